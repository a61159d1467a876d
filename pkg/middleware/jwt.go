package middleware

import (
	"net/http"
	"strings"

	"taskmind/task-api/internal/model"
	"taskmind/task-api/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware resolves the bearer token in the Authorization header to a
// user record. Missing header, bad signature, expired token and unknown
// subject all produce the same 401 so callers can't probe which it was.
func NewJWTMiddleware(d *gorm.DB, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing or invalid credentials",
				"requestID": requestID,
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing or invalid credentials",
				"requestID": requestID,
			})
			return
		}

		email, err := tokens.VerifyAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing or invalid credentials",
				"requestID": requestID,
			})
			return
		}

		var user model.User
		err = d.Where("email = ?", email).First(&user).Error
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				zap.L().Error("Failed to load token subject", zap.Error(err), zap.String("requestID", requestID))
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing or invalid credentials",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", &user)
		c.Next()
	}
}
