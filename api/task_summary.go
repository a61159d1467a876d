package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskSummary returns the caller's task counts partitioned by status
func (a *API) TaskSummary(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	summary, err := a.Tasks.Summary(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build task summary", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}
