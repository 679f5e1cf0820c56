// Package server exposes the advisor over HTTP: pipeline analysis plus a
// small authenticated read-only proxy for Azure DevOps.
package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/azdevtools/pipeline-advisor/pkg/auth"
	"github.com/azdevtools/pipeline-advisor/pkg/azuredevops"
)

// DevOpsClient is the slice of the Azure DevOps client the server uses.
type DevOpsClient interface {
	ListProjects(ctx context.Context) ([]azuredevops.Project, error)
	ListPipelines(ctx context.Context, project string) ([]azuredevops.Pipeline, error)
	GetPipelineYAML(ctx context.Context, project string, pipelineID int, branch string) (string, error)
}

// Options wires the server's collaborators. DevOps may be nil when no
// organization is configured; the proxy endpoints then answer 503.
type Options struct {
	Store     *auth.Store
	DevOps    DevOpsClient
	StaticDir string
	Logger    *zap.Logger
	Debug     bool
}

type Server struct {
	engine *gin.Engine
	store  *auth.Store
	devops DevOpsClient
	log    *zap.Logger
}

func New(opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		engine: gin.New(),
		store:  opts.Store,
		devops: opts.DevOps,
		log:    log,
	}

	s.engine.Use(gin.Recovery(), requestID(), requestLogger(log), countRequests())
	s.registerRoutes(opts.StaticDir)
	return s
}

func (s *Server) registerRoutes(staticDir string) {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api/pipelines")
	api.POST("/analyze", s.handleAnalyze)

	authorized := api.Group("", s.basicAuth())
	authorized.GET("/list", s.handleListPipelines)
	authorized.GET("/:project/:id/yaml", s.handlePipelineYAML)

	if staticDir != "" {
		s.serveFrontend(staticDir)
	}
}

// serveFrontend serves the built frontend, falling back to index.html for
// client-side routes. API paths are excluded so they keep their JSON 404s.
func (s *Server) serveFrontend(dir string) {
	s.engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		requested := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}

// Handler exposes the router for net/http servers and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
