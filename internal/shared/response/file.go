package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// File writes data as a downloadable attachment.
func File(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
