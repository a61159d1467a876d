package api

import (
	"errors"
	"net/http"

	"taskmind/task-api/internal/model"
	"taskmind/task-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type taskStatusBody struct {
	Status model.TaskStatus `json:"status"`
}

func (a *API) TaskStatus(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var data taskStatusBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if !data.Status.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Status must be one of pending, in_progress, completed",
			"requestID": requestID,
		})
		return
	}

	task, err := a.Tasks.UpdateStatus(c.Request.Context(), userID, taskID, data.Status)
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

		zap.L().Error("Failed to update task status", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, task)
}
