// Package http exposes the debug/introspection API: surface and session
// state, collect diagnostics, and Prometheus metrics.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/domain/surface"
	"github.com/pathlane/dirview/internal/infrastructure/config"
	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/shared/types"
)

// Server serves the debug API over one gin router.
type Server struct {
	router   *gin.Engine
	surfaces *surface.Table
	logger   *logging.Logger
	http     *http.Server
}

// surfaceView is the wire shape of one surface context.
type surfaceView struct {
	ID                  string   `json:"id"`
	CurrentSessionID    string   `json:"current_session_id,omitempty"`
	StickySessionID     string   `json:"sticky_session_id,omitempty"`
	Transients          []string `json:"transients"`
	SessionCount        int      `json:"session_count"`
	InterceptNavigation bool     `json:"intercept_navigation"`
}

// sessionView is the wire shape of one session.
type sessionView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	SurfaceID       string   `json:"surface_id"`
	Depth           int      `json:"depth"`
	FullscreenDepth int      `json:"fullscreen_depth"`
	Plain           bool     `json:"plain"`
	TransientParent string   `json:"transient_parent,omitempty"`
	IndexPath       string   `json:"index_path,omitempty"`
	Attributes      []string `json:"attributes"`
	Dispatchers     []string `json:"dispatchers"`
}

// NewServer creates the debug API server.
func NewServer(cfg *config.Config, surfaces *surface.Table, hubHandler gin.HandlerFunc, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	s := &Server{
		router:   router,
		surfaces: surfaces,
		logger:   logger,
	}

	router.GET("/health", s.handleHealth)
	router.GET("/surfaces", s.handleSurfaces)
	router.GET("/sessions", s.handleSessions)
	router.GET("/stats", s.handleStats)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if hubHandler != nil {
		router.GET("/events", hubHandler)
	}

	return s
}

// Run serves until the listener fails or Close is called.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	s.logger.Info("Debug API listening", zap.String("addr", addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying router for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSurfaces(c *gin.Context) {
	views := make([]surfaceView, 0)
	for _, ctx := range s.surfaces.All() {
		view := surfaceView{
			ID:                  string(ctx.ID),
			StickySessionID:     string(ctx.Sticky()),
			SessionCount:        ctx.Sessions.Len(),
			InterceptNavigation: ctx.InterceptNavigation(),
			Transients:          make([]string, 0),
		}
		if cur := ctx.Current(); cur != nil {
			view.CurrentSessionID = string(cur.ID)
		}
		for _, t := range ctx.Transients() {
			view.Transients = append(view.Transients, string(t))
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"surfaces": views})
}

func (s *Server) handleSessions(c *gin.Context) {
	views := make([]sessionView, 0)
	for _, ctx := range s.surfaces.All() {
		for _, sess := range ctx.Sessions.All() {
			views = append(views, sessionView{
				ID:              string(sess.ID),
				Name:            sess.Name,
				SurfaceID:       string(ctx.ID),
				Depth:           sess.Depth,
				FullscreenDepth: sess.FullscreenDepth,
				Plain:           sess.IsPlain(),
				TransientParent: string(sess.TransientParent),
				IndexPath:       sess.IndexPath,
				Attributes:      types.AttributeNames(sess.AttributeChain),
				Dispatchers:     types.DispatcherNames(sess.PreviewChain),
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": views})
}

func (s *Server) handleStats(c *gin.Context) {
	names := s.surfaces.CollectAll(func(sess *session.Session) []string {
		return []string{sess.Name}
	})
	c.JSON(http.StatusOK, gin.H{
		"surfaces":       len(s.surfaces.All()),
		"total_sessions": s.surfaces.TotalSessions(),
		"session_names":  names,
	})
}
