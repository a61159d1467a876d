package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthLogout is a stateless no-op. There is no server-side revocation, the
// client just drops its tokens and they expire on their own.
func (a *API) AuthLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
