package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mini-time-tracker/internal/domain"
)

// EntryService is what the HTTP layer needs from the use case.
type EntryService interface {
	List(ctx context.Context) ([]domain.TimeEntry, error)
	Create(ctx context.Context, c domain.Candidate) (domain.TimeEntry, error)
	Summary(ctx context.Context) (domain.Summary, error)
}

// pinger is implemented by services that can check their storage.
type pinger interface {
	Ping(ctx context.Context) error
}

const requestIDHeader = "X-Request-ID"

// HTTPServer returns a configured http.Server exposing the entries API.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(a.log, a.uc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("http server configured", slog.String("addr", addr))
	return srv
}

// NewRouter builds the gin engine with middleware and the /api routes.
func NewRouter(log *slog.Logger, entries EntryService) *gin.Engine {
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(requestID())
	r.Use(loggingMiddleware(log))
	r.Use(recovery(log))

	r.GET("/api/health", func(c *gin.Context) {
		if p, ok := entries.(pinger); ok {
			if err := p.Ping(c.Request.Context()); err != nil {
				log.Error("health check failed", slog.String("error", err.Error()))
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	h := &entryHandler{log: log, entries: entries}
	api := r.Group("/api/entries")
	api.GET("", h.list)
	api.POST("", h.create)
	api.GET("/summary", h.summary)
	return r
}

// requestID propagates X-Request-ID, generating one when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// recovery turns a handler panic into the generic 500 body used for every
// internal failure. The panic value is logged, never returned.
func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		log.Error("panic recovered",
			slog.Any("panic", rec),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(requestIDHeader)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
	})
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("remote", c.ClientIP()),
			slog.String("request_id", c.GetString(requestIDHeader)),
			slog.Duration("dur", time.Since(start)),
		)
	}
}
