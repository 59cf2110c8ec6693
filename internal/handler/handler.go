package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
	"github.com/Rishi01010010/Doc-Analyzer/internal/domain"
	"github.com/Rishi01010010/Doc-Analyzer/internal/service"
	"github.com/Rishi01010010/Doc-Analyzer/internal/storage"
)

type AudioReader interface {
	Open(ctx context.Context, filename string) (io.ReadCloser, int64, error)
}

type Handler struct {
	service       service.PipelineService
	audio         AudioReader
	maxUploadSize int64
	log           *zap.Logger
}

func NewHandler(service service.PipelineService, audio AudioReader, cfg *config.AppConfig, log *zap.Logger) *Handler {
	return &Handler{
		service:       service,
		audio:         audio,
		maxUploadSize: cfg.MaxUploadSize,
		log:           log,
	}
}

func (h *Handler) ProcessImage(c *gin.Context) {
	if h.maxUploadSize > 0 {
		if c.Request.ContentLength > h.maxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": domain.ErrFileTooLarge.Error()})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": domain.ErrFileTooLarge.Error()})
		case h.fileFieldWithoutFilename(c):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNoFileSelected.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNoFile.Error()})
		}
		return
	}

	f, err := file.Open()
	if err != nil {
		h.log.Error("Failed to open file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.log.Error("Failed to read file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	result, err := h.service.Run(c.Request.Context(), domain.UploadedImage{
		Filename: file.Filename,
		Data:     data,
	})
	if err != nil {
		h.writeRunError(c, file.Filename, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// fileFieldWithoutFilename detects a "file" part sent with an empty filename,
// which multipart parsing files under plain values.
func (h *Handler) fileFieldWithoutFilename(c *gin.Context) bool {
	form := c.Request.MultipartForm
	if form == nil {
		return false
	}
	_, ok := form.Value["file"]
	return ok
}

func (h *Handler) writeRunError(c *gin.Context, filename string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoFileSelected), errors.Is(err, domain.ErrInvalidFileType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Error("Failed to process image",
		zap.String("filename", filename),
		zap.Error(err))

	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image: " + stageErr.Stage + " stage failed"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image"})
}

func (h *Handler) GetAudio(c *gin.Context) {
	filename := c.Param("filename")

	rc, size, err := h.audio.Open(c.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, domain.ErrAudioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrAudioNotFound.Error()})
			return
		}
		h.log.Error("Failed to open audio file",
			zap.String("filename", filename),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audio file"})
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, size, storage.AudioContentType, rc, nil)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) GetUI(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}
