package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/icco/gamecrm"
	_ "github.com/icco/gamecrm/cmd/server/docs"
	"github.com/icco/gamecrm/hubspot"
	"github.com/icco/gutil/logging"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/render"
	"github.com/unrolled/secure"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	// Renderer is a renderer for all occasions. These are our preferred default options.
	// See:
	//  - https://github.com/unrolled/render/blob/v1/README.md
	//  - https://godoc.org/gopkg.in/unrolled/render.v1
	Renderer = render.New(render.Options{
		Charset:                   "UTF-8",
		Directory:                 "views",
		FileSystem:                &render.EmbedFileSystem{FS: views},
		DisableHTTPErrorRendering: false,
		Extensions:                []string{".tmpl", ".html"},
		IndentJSON:                false,
		IndentXML:                 true,
		Layout:                    "layout",
		RequirePartials:           true,
		Funcs: []template.FuncMap{{
			"join": strings.Join,
		}},
	})

	log       = gamecrm.NewLogger()
	ugcPolicy = bluemonday.StrictPolicy()
)

// @title Games CRM
// @version 1.0
// @description Lists, creates, updates and deletes Games records stored in a HubSpot custom object.
// @contact.name API Support
// @contact.url http://github.com/icco/gamecrm
// @license.name MIT
// @BasePath /

func main() {
	cfg := LoadConfig()
	log.Infow("Starting up", "host", fmt.Sprintf("http://localhost:%s", cfg.Port), "object_type", cfg.ObjectType)

	shutdownMetrics, err := setupMetrics()
	if err != nil {
		log.Panicw("could not set up metrics", zap.Error(err))
		return
	}

	crm, err := hubspot.New(&hubspot.Config{
		Token:      cfg.AccessToken,
		ObjectType: cfg.ObjectType,
		BaseURL:    cfg.BaseURL,
	})
	if err != nil {
		log.Panicw("could not create hubspot client", zap.Error(err))
		return
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        NewServer(cfg, crm).Routes(),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("could not shut down server", zap.Error(err))
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		log.Errorw("could not shut down metrics", zap.Error(err))
	}
}

// Server holds what the handlers need. It is built once and shared by all
// requests.
type Server struct {
	cfg *Config
	crm hubspot.Objects
}

// NewServer wires a Server.
func NewServer(cfg *Config, crm hubspot.Objects) *Server {
	return &Server{cfg: cfg, crm: crm}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log.Desugar()))
	r.Use(middleware.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowCredentials:   true,
		OptionsPassthrough: true,
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:     []string{"Link"},
		MaxAge:             300, // Maximum value not ignored by any of major browsers
	}).Handler)

	r.NotFound(notFoundHandler)

	// Stuff that does not ssl redirect
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:   true,
			ContentTypeNosniff: true,
			FrameDeny:          true,
			HostsProxyHeaders:  []string{"X-Forwarded-Host"},
			IsDevelopment:      s.cfg.IsDev,
			SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		}).Handler)

		r.Get("/healthz", s.healthCheckHandler)
		r.Mount("/metrics", promhttp.Handler())
	})

	// Everything that does SSL only
	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:     true,
			ContentTypeNosniff:   true,
			FrameDeny:            true,
			HostsProxyHeaders:    []string{"X-Forwarded-Host"},
			IsDevelopment:        s.cfg.IsDev,
			SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
			SSLRedirect:          !s.cfg.IsDev,
			STSIncludeSubdomains: true,
			STSPreload:           true,
			STSSeconds:           315360000,
		}).Handler)

		r.Get("/", s.homeHandler)
		r.Get("/update-cobj", s.formHandler)
		r.Post("/update-cobj", s.submitHandler)
		r.Post("/create-cobj", s.submitHandler)

		r.Delete("/delete-cobj", s.deleteHandler)
		r.Delete("/delete-cobj/", s.deleteHandler)
		r.Delete("/delete-cobj/{id}", s.deleteHandler)

		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	})

	return otelhttp.NewHandler(r, gamecrm.Service)
}
