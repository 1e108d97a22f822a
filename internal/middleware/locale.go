package middleware

import (
	"nova-hris/internal/i18n"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

var supportedLocales = []language.Tag{language.English, language.Indonesian}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale picks the activity-feed language from Accept-Language. Requests
// without a usable header keep the configured default.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		if header == "" {
			c.Next()
			return
		}

		tags, _, err := language.ParseAcceptLanguage(header)
		if err != nil || len(tags) == 0 {
			c.Next()
			return
		}

		_, idx, conf := localeMatcher.Match(tags...)
		if conf == language.No {
			c.Next()
			return
		}

		base, _ := supportedLocales[idx].Base()
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), base.String()))
		c.Next()
	}
}
