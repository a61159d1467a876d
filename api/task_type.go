package api

import (
	"errors"
	"net/http"

	"taskmind/task-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type taskTypeBody struct {
	TaskType string `json:"task_type"`
}

func (a *API) TaskType(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var data taskTypeBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	task, err := a.Tasks.UpdateType(c.Request.Context(), userID, taskID, data.TaskType)
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

		zap.L().Error("Failed to update task type", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, task)
}
