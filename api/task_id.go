package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// taskIDParam parses the :id route parameter. On failure it writes the 400
// response itself and returns ok=false.
func taskIDParam(c *gin.Context) (uint, bool) {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid task ID",
			"requestID": requestID,
		})
		return 0, false
	}

	return uint(id), true
}
