package api

import (
	"net/http"

	"taskmind/task-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *API) AuthRefresh(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data refreshBody
	if err := c.ShouldBind(&data); err != nil || data.RefreshToken == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Refresh token field can't be empty",
			"requestID": requestID,
		})
		return
	}

	email, err := a.Tokens.VerifyAccess(data.RefreshToken)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Missing or invalid credentials",
			"requestID": requestID,
		})
		return
	}

	// The subject may have been removed since the token was issued
	var user model.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Missing or invalid credentials",
			"requestID": requestID,
		})
		return
	}

	accessToken, err := a.Tokens.Access(user.Email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}
