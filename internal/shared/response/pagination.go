package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Paginate slices an already-loaded list using the page/page_size query params.
func Paginate[T any](c *gin.Context, items []T) ([]T, *PaginationMeta) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(items))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	meta := NewPaginationMeta(total, page, pageSize)
	return items[start:end], &meta
}
