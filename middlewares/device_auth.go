package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/utils"
	"gorm.io/gorm"
)

// DeviceAuthMiddleware resolves the Authorization bearer token against
// palm_devices.api_token. The token is opaque: exact match or 401.
func DeviceAuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization format"))
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		var device models.PalmDevice
		if err := db.Where("api_token = ?", token).First(&device).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid device token"))
			c.Abort()
			return
		}

		now := time.Now()
		if err := db.Model(&device).Update("last_seen_at", now).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to update last_seen_at for device %d: %v", device.ID, err)
		}

		c.Set("device", &device)
		c.Set("device_id", device.ID)
		c.Next()
	}
}
