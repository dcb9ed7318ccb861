package server

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/api"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/config"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/importer"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/parser"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/store"
)

// Server is the HTTP surface of the ingestion service.
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer wires store, coordinator and API routes from config.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "prirtem.db")

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	opts := parser.Options{
		RefillThresholdAr:      cfg.Ingest.RefillThresholdAr,
		VehicleBlankRowLimit:   cfg.Ingest.VehicleBlankRowLimit,
		GeneratorBlankRowLimit: cfg.Ingest.GeneratorBlankRowLimit,
		OtherBlankRowLimit:     cfg.Ingest.OtherBlankRowLimit,
	}
	coordinator := importer.NewCoordinator(st, opts)
	handler := api.NewHandler(st, coordinator, cfg.Upload)

	s := &Server{
		router: gin.Default(),
		store:  st,
	}

	// Uploads can approach MaxFiles * MaxFileSize; keep gin's multipart
	// memory ceiling below that and let the rest spill to disk.
	s.router.MaxMultipartMemory = 32 << 20

	s.router.Use(corsMiddleware())

	apiGroup := s.router.Group("/api")
	{
		handler.RegisterRoutes(apiGroup)
	}

	return s
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// Run starts the server on the configured port.
func (s *Server) Run(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}

// Close releases the underlying store.
func (s *Server) Close() error {
	return s.store.Close()
}
