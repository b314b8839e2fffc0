package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/servitec-peru/go-admin-backend/internal/uploads"
)

type Pipeline interface {
	Upload(ctx context.Context, params uploads.Params, originalName, contentType string, r io.Reader) (*uploads.File, error)
}

type Handler struct {
	pipeline Pipeline
	logger   *zap.Logger
}

func NewHandler(pipeline Pipeline, logger *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, logger: logger.Named("uploads_http")}
}

func Register(r gin.IRouter, h *Handler) {
	r.POST("", h.upload)
}

// upload accepts a multipart form: file plus filePath, optional fileName,
// isImage, withThumbImage and resize fields.
func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	filePath := c.PostForm("filePath")
	if filePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing filePath"})
		return
	}

	params := uploads.Params{
		FilePath:       filePath,
		FileName:       c.PostForm("fileName"),
		IsImage:        formBool(c, "isImage", true),
		WithThumbImage: formBool(c, "withThumbImage", true),
		Resize:         c.PostForm("resize"),
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	file, err := h.pipeline.Upload(c.Request.Context(), params,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), f)
	if err != nil {
		if errors.Is(err, uploads.ErrThumbUnavailable) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("upload failed", zap.String("filePath", filePath), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete"})
		return
	}

	c.JSON(http.StatusOK, file)
}

func formBool(c *gin.Context, field string, defaultValue bool) bool {
	raw := c.PostForm(field)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
