package api

import (
	"errors"
	"net/http"

	"taskmind/task-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskDelete removes a task. Its paired agent goes with it in the same
// transaction.
func (a *API) TaskDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := a.Tasks.Delete(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Task not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}
