// Package server exposes card rendering over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pkt.systems/cardsmith/icons"
	"pkt.systems/cardsmith/internal/config"
)

const (
	PingURL         = "/ping"
	ThemesURL       = "/v1/themes"
	RenderCardURL   = "/v1/cards/render"
	LayoutCardURL   = "/v1/cards/layout"
	shutdownTimeout = 10 * time.Second
)

// ErrRenderTimeout is returned when a render exceeds the configured budget.
var ErrRenderTimeout = errors.New("render timed out")

type Service struct {
	config config.Config
	icons  *icons.Catalog
	logger zerolog.Logger
	server *http.Server
	router *gin.Engine
}

// NewService returns a service rendering with catalog. A nil catalog uses
// the generated default icons.
func NewService(cfg config.Config, catalog *icons.Catalog, logger zerolog.Logger) *Service {
	RegisterJSONTagNames()
	if catalog == nil {
		catalog = icons.Default()
	}
	service := &Service{
		config: cfg,
		icons:  catalog,
		logger: logger,
	}

	server := &http.Server{
		Addr:              cfg.HTTPServerAddress,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	service.setupRouter(server)
	service.server = server
	return service
}

var registerOnce sync.Once

// RegisterJSONTagNames makes validation errors name fields by their json
// tag instead of the Go field name.
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

func (service *Service) setupRouter(server *http.Server) {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(service.logger))

	router.GET(PingURL, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})
	router.GET(ThemesURL, service.listThemes)
	router.POST(RenderCardURL, service.renderCard)
	router.POST(LayoutCardURL, service.layoutCard)

	server.Handler = router
	service.router = router
}

// Handler returns the HTTP handler, for embedding and tests.
func (service *Service) Handler() http.Handler { return service.router }

// Start listens until Shutdown is called.
func (service *Service) Start() error {
	service.logger.Info().Str("addr", service.server.Addr).Msg("http server listening")
	if err := service.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (service *Service) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(service.Start)
	g.Go(func() error {
		<-gctx.Done()
		service.logger.Info().Msg("graceful shutdown of http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := service.Shutdown(shutdownCtx); err != nil {
			return err
		}
		service.logger.Info().Msg("http server stopped")
		return nil
	})
	return g.Wait()
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		status := ctx.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		} else if status >= http.StatusBadRequest {
			event = logger.Warn()
		}
		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", ctx.ClientIP()).
			Msg("request")
	}
}
