package api

import (
	"errors"
	"net/http"

	"taskmind/task-api/internal/model"
	"taskmind/task-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type forgotPasswordBody struct {
	Email string `json:"email"`
}

func (a *API) AuthForgotPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "No account with that email",
			"requestID": requestID,
		})
		return
	}

	resetToken, err := a.Tokens.Reset(user.Email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Mail delivery is best-effort and must never block or fail the request
	go func() {
		if err := service.SendResetMail(user.Email, resetToken); err != nil {
			if errors.Is(err, service.ErrMailDisabled) {
				zap.L().Debug("Reset mail skipped, mail not configured")
				return
			}

			zap.L().Warn("Failed to send reset mail", zap.Error(err))
		}
	}()

	// The token is also returned directly so the flow works without a mail
	// server configured
	c.JSON(http.StatusOK, gin.H{
		"message":     "Password reset token issued",
		"reset_token": resetToken,
	})
}
