package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/service"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/pkg/response"
)

// DatasetHandler handles HTTP requests for the dataset cache
type DatasetHandler struct {
	datasets *service.DatasetService
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(datasets *service.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasets: datasets}
}

// Refresh handles POST /api/v1/dataset/refresh
func (h *DatasetHandler) Refresh(c *gin.Context) {
	status, err := h.datasets.Refresh(c.Request.Context())
	if err != nil {
		// Portal unreachable and no cached fallback: blocking error,
		// the client offers a retry.
		var srcErr *ogd.DataSourceError
		if errors.As(err, &srcErr) {
			response.BadGateway(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, status)
}

// GetStatus handles GET /api/v1/dataset/status
func (h *DatasetHandler) GetStatus(c *gin.Context) {
	response.Success(c, h.datasets.Status())
}

// GetAnomalies handles GET /api/v1/quality/anomalies
func (h *DatasetHandler) GetAnomalies(c *gin.Context) {
	anomalies := h.datasets.Anomalies()
	response.Success(c, gin.H{
		"data":  anomalies,
		"count": len(anomalies),
	})
}
