package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts the assistances stub. The feature never shipped; the
// endpoint answers the same placeholder the original deployment does.
func Register(r gin.IRouter) {
	r.POST("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "En desarrollo!!!"})
	})
}
