// Package server exposes one editing session over HTTP for browser
// front-ends: upload an original, post adjustment changes, fetch the
// composed preview, histogram and palette, and drive bake/undo/redo.
//
// The document expects a single logical writer, so every handler
// funnels through one mutex. Parameter posts do not recompose inline;
// they mark the session dirty and arm a short debounce timer, so a
// slider drag producing dozens of updates costs one composition. Reads
// of the current buffer flush the pending recompose first, which keeps
// the preview consistent with the acknowledged state.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gojson "github.com/goccy/go-json"
	"github.com/vincent-vinf/go-jsend"
	"go.uber.org/zap"

	"github.com/retouchlab/retouch/internal/document"
)

// DefaultDebounce coalesces bursts of parameter updates into one
// recomposition.
const DefaultDebounce = 200 * time.Millisecond

// Server wires a Document to a gin router.
type Server struct {
	mu       sync.Mutex
	doc      *document.Document
	dirty    bool
	timer    *time.Timer
	debounce time.Duration
	log      *zap.SugaredLogger
	engine   *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithDebounce overrides the recompose debounce window. Zero or
// negative means recompose synchronously on every parameter change.
func WithDebounce(d time.Duration) Option {
	return func(s *Server) { s.debounce = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a server around an existing document session.
func New(doc *document.Document, opts ...Option) *Server {
	s := &Server{
		doc:      doc,
		debounce: DefaultDebounce,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, jsend.SimpleErr("page not found"))
	})

	api := r.Group("/api")
	api.POST("/image", s.loadImage)
	api.GET("/image", s.currentImage)
	api.GET("/state", s.state)
	api.GET("/adjustments", s.adjustments)
	api.POST("/adjust", s.applyAdjustment)
	api.GET("/histogram", s.histogramStats)
	api.GET("/palette", s.palette)
	api.POST("/bake", s.bake)
	api.POST("/undo", s.undo)
	api.POST("/redo", s.redo)
	api.POST("/reset", s.reset)
	api.POST("/geometry", s.geometry)

	s.engine = r
	return s
}

// Router returns the configured gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run(port int) error {
	s.log.Infow("serving", "port", port)
	return s.engine.Run(fmt.Sprintf(":%d", port))
}

// scheduleRecompose marks the session dirty and arms (or re-arms) the
// debounce timer. Callers hold s.mu.
func (s *Server) scheduleRecompose() {
	s.dirty = true
	if s.debounce <= 0 {
		s.recomposeLocked()
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.recomposeLocked()
		})
		return
	}
	s.timer.Reset(s.debounce)
}

// flushLocked forces any pending recompose to happen now. Callers hold
// s.mu.
func (s *Server) flushLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.recomposeLocked()
}

func (s *Server) recomposeLocked() {
	if !s.dirty {
		return
	}
	start := time.Now()
	if s.doc.Recompose() {
		s.dirty = false
		s.log.Debugw("recomposed", "elapsed", time.Since(start))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "ETag"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// jsonData writes a jsend envelope marshaled with goccy/go-json, which
// is noticeably faster for the 4x256-bucket histogram payloads than the
// default encoder.
func jsonData(c *gin.Context, status int, body interface{}) {
	data, err := gojson.Marshal(body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, jsend.SimpleErr(err.Error()))
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
