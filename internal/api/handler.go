package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/config"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/importer"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/store"
)

// Handler serves the ingestion API.
type Handler struct {
	store       *store.Store
	coordinator *importer.Coordinator
	upload      config.Upload
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, coordinator *importer.Coordinator, upload config.Upload) *Handler {
	return &Handler{
		store:       st,
		coordinator: coordinator,
		upload:      upload,
	}
}

// RegisterRoutes registers the ingestion API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Import
	router.POST("/imports", h.Import)
	router.GET("/imports/batches", h.ListBatches)
	router.GET("/imports/batches/:id/files", h.ListBatchFiles)

	// Fuel log queries
	router.GET("/fuel/vehicle", h.ListVehicleLogs)
	router.GET("/fuel/generator", h.ListGeneratorLogs)
	router.GET("/fuel/other", h.ListOtherLogs)

	// Vehicle registry
	router.GET("/vehicles", h.ListVehicles)
}
