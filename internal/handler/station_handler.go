package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/service"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/pkg/response"
)

// StationHandler handles HTTP requests for station and class metadata
type StationHandler struct {
	stations *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stations *service.StationService) *StationHandler {
	return &StationHandler{stations: stations}
}

// GetStations handles GET /api/v1/meta/stations
func (h *StationHandler) GetStations(c *gin.Context) {
	stations := h.stations.Stations()
	response.Success(c, gin.H{
		"data":  stations,
		"count": len(stations),
	})
}

// GetClasses handles GET /api/v1/meta/classes
func (h *StationHandler) GetClasses(c *gin.Context) {
	classes := h.stations.Classes()
	response.Success(c, gin.H{
		"data":  classes,
		"count": len(classes),
	})
}
