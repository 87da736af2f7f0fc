package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fluentoffice/notes-backend/internal/config"
	"github.com/fluentoffice/notes-backend/internal/logger"
	"github.com/fluentoffice/notes-backend/internal/store"
)

// Enqueuer dispatches a meeting for background processing.
type Enqueuer interface {
	Enqueue(meetingID uint) bool
}

type Server struct {
	uploadsDir string
	store      store.Store
	pipeline   Enqueuer
	logger     logger.Logger
	engine     *gin.Engine
}

// New creates the HTTP server and registers all routes.
func New(cfg *config.Config, st store.Store, pipe Enqueuer, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	s := &Server{
		uploadsDir: cfg.Paths.Uploads,
		store:      st,
		pipeline:   pipe,
		logger:     log,
		engine:     engine,
	}
	s.registerRoutes()
	return s
}

// Router exposes the underlying handler for the HTTP server and tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.healthCheck)

	api := s.engine.Group("/api/meetings")
	{
		api.POST("/upload", s.uploadMeeting)
		api.GET("", s.listMeetings)
		api.GET("/search", s.searchTranscripts)
		api.GET("/:id", s.getMeeting)
		api.DELETE("/:id", s.deleteMeeting)
		api.GET("/:id/export", s.exportMeeting)
	}
}
