package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/quotations/domain"
)

type Repository interface {
	Fetch(ctx context.Context, quotationID string) (*domain.Quotation, error)
	FetchAll(ctx context.Context) ([]*domain.Quotation, error)
	Add(ctx context.Context, quotation *domain.Quotation) error
	Update(ctx context.Context, quotationID string, quotation *domain.Quotation) error
	SoftDelete(ctx context.Context, quotationID string) error
}

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger.Named("quotations_http")}
}

func Register(r gin.IRouter, h *Handler) {
	r.GET("", h.list)
	r.GET("/:quotationId", h.get)
	r.POST("", h.post)
	r.PUT("/:quotationId", h.put)
	r.DELETE("/:quotationId", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	quotations, err := h.repo.FetchAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quotations)
}

func (h *Handler) get(c *gin.Context) {
	quotation, err := h.repo.Fetch(c.Request.Context(), c.Param("quotationId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quotation)
}

func (h *Handler) post(c *gin.Context) {
	var quotation domain.Quotation
	if err := c.ShouldBindJSON(&quotation); err != nil {
		c.String(http.StatusBadRequest, "quotation/invalid_body")
		return
	}

	if err := h.repo.Add(c.Request.Context(), &quotation); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) put(c *gin.Context) {
	var quotation domain.Quotation
	if err := c.ShouldBindJSON(&quotation); err != nil {
		c.String(http.StatusBadRequest, "quotation/invalid_body")
		return
	}

	if err := h.repo.Update(c.Request.Context(), c.Param("quotationId"), &quotation); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.repo.SoftDelete(c.Request.Context(), c.Param("quotationId")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrQuotationNotFound) {
		c.String(http.StatusNotFound, "quotation/not_found")
		return
	}
	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.String(http.StatusInternalServerError, "internal error")
}
