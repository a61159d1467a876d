package api

import (
	"errors"
	"net/http"
	"time"

	"taskmind/task-api/internal/agent"
	"taskmind/task-api/internal/llm"
	"taskmind/task-api/internal/model"
	"taskmind/task-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type chatBody struct {
	Message string `json:"message"`
}

// TaskChat runs one chat turn against the task's assistant. Provider failures
// never surface as errors here; the response degrades to a fallback text.
func (a *API) TaskChat(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)
	user := c.MustGet("user").(*model.User)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var data chatBody
	if err := c.ShouldBind(&data); err != nil || data.Message == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Message field can't be empty",
			"requestID": requestID,
		})
		return
	}

	task, taskAgent, err := a.Tasks.AgentForTask(c.Request.Context(), userID, taskID)
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

		zap.L().Error("Failed to load task agent", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	instructions := agent.TaskInstructions(
		taskAgent.AgentName,
		taskAgent.Purpose,
		task.Title,
		task.Description,
		user.DisplayName(),
	)

	response := llm.Generate(c.Request.Context(), a.Completer, instructions, data.Message)

	c.JSON(http.StatusOK, gin.H{
		"response":   response,
		"agent_name": taskAgent.AgentName,
		"timestamp":  time.Now().UTC(),
	})
}
