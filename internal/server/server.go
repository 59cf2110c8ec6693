package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rishi01010010/Doc-Analyzer/internal/config"
	"github.com/Rishi01010010/Doc-Analyzer/internal/handler"
)

const (
	indexTemplate   = "index.html"
	requestIDHeader = "X-Request-ID"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	components, err := NewComponents(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	h := handler.NewHandler(components.Pipeline, components.Audio, &cfg.App, log)
	router := NewRouter(h, cfg, log)

	server := &Server{
		httpServer: &http.Server{
			Addr:           cfg.Server.Address(),
			Handler:        router,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server, nil
}

func NewRouter(h *handler.Handler, cfg *config.Config, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	index := filepath.Join(cfg.App.TemplatesDir, indexTemplate)
	if _, err := os.Stat(index); err == nil {
		router.LoadHTMLFiles(index)
		router.GET("/", h.GetUI)
	} else {
		log.Warn("UI template not found, serving API only", zap.String("path", index))
	}

	router.GET("/health", h.HealthCheck)
	router.POST("/process", h.ProcessImage)
	router.GET("/audio/:filename", h.GetAudio)

	return router
}

// requestLogger tags each request with an ID, echoing a client supplied one.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		log.Info("Request handled",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
