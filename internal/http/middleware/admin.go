package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards the "admin" docs group. An empty key leaves the group open,
// which is how local development runs without ADMIN_KEY.
func AdminKey(required string) gin.HandlerFunc {
	want := []byte(required)
	return func(c *gin.Context) {
		if len(want) == 0 {
			c.Next()
			return
		}
		got := c.GetHeader(AdminKeyHeader)
		if got == "" {
			denyDocs(c, "missing "+AdminKeyHeader+" header")
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			denyDocs(c, AdminKeyHeader+" does not match ADMIN_KEY")
			return
		}
		c.Next()
	}
}

func denyDocs(c *gin.Context, details string) {
	c.Header("WWW-Authenticate", `ApiKey header="`+AdminKeyHeader+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "API documentation requires an admin key",
			"details": details,
		},
	})
}
