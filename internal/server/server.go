package server

import (
	"fmt"
	"log"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/gin-gonic/gin"
)

// Server is the local preview server for the skyline artwork.
type Server struct {
	cfg   *config.Config
	port  int
	cache *sceneCache
}

// New creates a server for the given config. A non-zero port overrides
// cfg.Server.Port.
func New(cfg *config.Config, port int) *Server {
	if port == 0 {
		port = cfg.Server.Port
	}
	return &Server{
		cfg:   cfg,
		port:  port,
		cache: newSceneCache(),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", s.handleHealth)
	r.GET("/", s.handleIndex)
	r.GET("/skyline.svg", s.handleSVG)
	r.GET("/skyline.png", s.handlePNG)

	api := r.Group("/api")
	{
		api.GET("/buildings", s.handleBuildings)
		api.GET("/scene", s.handleScene)
		api.GET("/validation", s.handleValidation)
		api.GET("/config", s.handleConfig)
	}
	return r
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Skyline preview server starting on http://localhost%s", addr)
	log.Printf("Canvas: %vx%v", s.cfg.Canvas.Width, s.cfg.Canvas.Height)
	log.Printf("Config: %s", s.cfg.Validate())
	return s.Router().Run(addr)
}
