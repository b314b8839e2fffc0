package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/messaging"
	usersdomain "github.com/servitec-peru/go-admin-backend/internal/users/domain"
	"github.com/servitec-peru/go-admin-backend/internal/verification/domain"
)

// Service is the login flow as the HTTP layer sees it.
type Service interface {
	FindUserByDNI(ctx context.Context, dni string) (*domain.Session, *usersdomain.User, error)
	SendCode(ctx context.Context, sessionID string, method domain.Method, captchaToken string) (string, error)
	VerifyCode(ctx context.Context, sessionID, code string) (string, error)
	Logout(ctx context.Context, sessionID, userID string)
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("verification_http")}
}

func Register(r gin.IRouter, h *Handler) {
	r.POST("/dni", h.findByDNI)
	r.POST("/send-code", h.sendCode)
	r.POST("/verify-code", h.verifyCode)
	r.POST("/logout", h.logout)
}

type dniRequest struct {
	DNI string `json:"dni" binding:"required"`
}

// subjectResponse exposes only what the method-selection screen needs;
// contact details go out masked.
type subjectResponse struct {
	SessionID   string `json:"sessionId"`
	FirstName   string `json:"firstName"`
	MaskedPhone string `json:"maskedPhone,omitempty"`
	MaskedEmail string `json:"maskedEmail,omitempty"`
}

func (h *Handler) findByDNI(c *gin.Context) {
	var req dniRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidDNI.Error()})
		return
	}

	session, user, err := h.service.FindUserByDNI(c.Request.Context(), req.DNI)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, subjectResponse{
		SessionID:   session.ID,
		FirstName:   user.FirstName,
		MaskedPhone: messaging.MaskPhone(user.Phone.Number),
		MaskedEmail: messaging.MaskEmail(user.Email),
	})
}

type sendCodeRequest struct {
	SessionID    string `json:"sessionId" binding:"required"`
	Method       string `json:"method" binding:"required"`
	CaptchaToken string `json:"captchaToken"`
}

func (h *Handler) sendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	message, err := h.service.SendCode(c.Request.Context(), req.SessionID, domain.Method(req.Method), req.CaptchaToken)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

type verifyCodeRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Code      string `json:"code" binding:"required"`
}

func (h *Handler) verifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	token, err := h.service.VerifyCode(c.Request.Context(), req.SessionID, req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type logoutRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

func (h *Handler) logout(c *gin.Context) {
	var req logoutRequest
	_ = c.ShouldBindJSON(&req) // logout succeeds even on an empty body

	h.service.Logout(c.Request.Context(), req.SessionID, req.UserID)

	c.Status(http.StatusOK)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidDNI),
		errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidCaptcha):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrExpiredCode):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrTooManyRequests):
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("verification request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "could not complete"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
