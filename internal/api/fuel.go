package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/store"
)

// ListVehicleLogs serves stored vehicle fuel log rows.
// GET /api/fuel/vehicle?vehicle_id=&source_file=&from=&to=&refills=&limit=&offset=
func (h *Handler) ListVehicleLogs(c *gin.Context) {
	opts := store.VehicleLogQueryOptions{}

	if v := c.Query("vehicle_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle_id"})
			return
		}
		opts.VehicleID = &id
	}
	if v := c.Query("source_file"); v != "" {
		opts.SourceFile = &v
	}
	if v := c.Query("from"); v != "" {
		opts.DateFrom = &v
	}
	if v := c.Query("to"); v != "" {
		opts.DateTo = &v
	}
	opts.Refills = c.Query("refills") == "true"
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "500"))
	opts.Offset, _ = strconv.Atoi(c.Query("offset"))

	logs, err := h.store.ListVehicleLogs(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// ListGeneratorLogs serves stored generator fuel log rows.
// GET /api/fuel/generator
func (h *Handler) ListGeneratorLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))
	logs, err := h.store.ListGeneratorLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// ListOtherLogs serves stored misc fuel purchase rows.
// GET /api/fuel/other
func (h *Handler) ListOtherLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))
	logs, err := h.store.ListOtherLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// ListVehicles serves the vehicle registry.
// GET /api/vehicles
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.store.ListVehicles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}
