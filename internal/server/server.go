// Package server builds the gin engine shared by every service binary and
// runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	_ "campus-events/docs"
	"campus-events/internal/handlers"
	"campus-events/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const shutdownTimeout = 15 * time.Second

// Options configures the engine built by New
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	RequestTimeout time.Duration
	Development    bool
	// Health is answered on GET /health; nil means no store to ping
	Health handlers.Pinger
}

// New returns an engine with the common middleware chain, /health and the
// swagger UI mounted. Service routes are added by the caller.
func New(opts Options) *gin.Engine {
	if !opts.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(
		otelgin.Middleware(opts.ServiceName),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorHandling(),
		middleware.CORS(opts.AllowedOrigins),
		middleware.SecurityHeaders(),
	)
	if opts.RequestTimeout > 0 {
		router.Use(requestTimeout(opts.RequestTimeout))
	}

	router.NoRoute(middleware.NotFoundHandler())
	router.NoMethod(middleware.MethodNotAllowedHandler())

	router.GET("/health", handlers.NewHealthHandler(opts.ServiceName, opts.Health).Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

// requestTimeout bounds the context handed to services
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down server on %s", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
