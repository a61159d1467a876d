package api

import (
	"net/http"
	"time"

	"taskmind/task-api/internal/agent"
	"taskmind/task-api/internal/llm"
	"taskmind/task-api/internal/model"

	"github.com/gin-gonic/gin"
)

// GuideChat talks to the app-guide assistant, which explains the application
// itself and refuses task work
func (a *API) GuideChat(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(*model.User)

	var data chatBody
	if err := c.ShouldBind(&data); err != nil || data.Message == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Message field can't be empty",
			"requestID": requestID,
		})
		return
	}

	instructions := agent.AppGuideInstructions(user.DisplayName())
	response := llm.Generate(c.Request.Context(), a.Completer, instructions, data.Message)

	c.JSON(http.StatusOK, gin.H{
		"response":   response,
		"agent_name": agent.AppGuideName,
		"timestamp":  time.Now().UTC(),
	})
}
