package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes the error envelope used by every endpoint. Anything in
// the 5xx range is logged server-side and the caller only sees a generic
// message; 4xx messages are passed through so the kiosk can display them.
func RespondError(c *gin.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		if ErrorLogger != nil {
			ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
