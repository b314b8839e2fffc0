package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/users/domain"
)

// Service is what the handlers need from the users service.
type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("users_http")}
}

func Register(r gin.IRouter, h *Handler) {
	r.GET("", h.list)
	r.GET("/:userId", h.get)
	r.POST("", h.post)
	r.PUT("/:userId", h.put)
	r.DELETE("/:userId", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Absent documents answer an empty 200, matching the read contract:
	// not-found is a valid empty case, not an error.
	c.JSON(http.StatusOK, user)
}

func (h *Handler) post(c *gin.Context) {
	var user domain.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.String(http.StatusBadRequest, "user/invalid_body")
		return
	}

	if err := h.service.Create(c.Request.Context(), &user); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) put(c *gin.Context) {
	var user domain.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.String(http.StatusBadRequest, "user/invalid_body")
		return
	}
	user.ID = c.Param("userId")

	if err := h.service.Update(c.Request.Context(), &user); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// fail maps service errors onto the wire contract: uniqueness conflicts
// are 412 with the raw reason string as body, missing users 404.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrDNIExists),
		errors.Is(err, domain.ErrPhoneNumberExists):
		c.String(http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		c.String(http.StatusNotFound, "user/not_found")
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
	}
}
