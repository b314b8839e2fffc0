package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	usersdomain "github.com/servitec-peru/go-admin-backend/internal/users/domain"
)

type UserGetter interface {
	Fetch(ctx context.Context, userID string) (*usersdomain.User, error)
}

type Handler struct {
	users  UserGetter
	logger *zap.Logger
}

func NewHandler(users UserGetter, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger.Named("auth_http")}
}

// Me returns the document of the authenticated caller. The uid of the
// verified ID token is the document id, so this is a plain fetch.
func (h *Handler) Me(c *gin.Context) {
	uid := c.GetString("firebase_uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.users.Fetch(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("fetch profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete"})
		return
	}
	if user == nil || user.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
