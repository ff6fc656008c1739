// Package server exposes property parsing and detection over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/joshuapare/propkit/internal/baseline"
	"github.com/joshuapare/propkit/internal/metrics"
	"github.com/joshuapare/propkit/pkg/detect"
	"github.com/joshuapare/propkit/propstore"
)

// Options wires the server's collaborators. Only Property and Logger are
// required.
type Options struct {
	Property propstore.Options
	Checks   []detect.Check
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Baseline baseline.Repository
	Logger   logrus.FieldLogger
	Mode     string // gin mode: debug, release, test
}

type handler struct {
	opts Options
	log  logrus.FieldLogger
}

// NewRouter builds the HTTP routes.
func NewRouter(opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	if opts.Metrics != nil {
		opts.Property.Observer = opts.Metrics
	}
	h := &handler{opts: opts, log: opts.Logger.WithField("component", "server")}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(h.log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.HTTPMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	v1.GET("/properties", h.listProperties)
	v1.GET("/properties/:key", h.getProperty)
	v1.GET("/device", h.device)
	v1.GET("/tamper", h.tamper)
	v1.GET("/verdict", h.verdict)
	v1.GET("/baseline", h.baseline)
	return r
}

// LoggerMiddleware logs one line per request.
func LoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start).Milliseconds(),
		}).Info("HTTP Request")
	}
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler, logger logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("HTTP server stopped")
		return nil
	}
}
