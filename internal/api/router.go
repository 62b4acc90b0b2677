package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/config"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/handler"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/middleware"
)

// Handlers bundles the handler set wired by main.
type Handlers struct {
	Analytics *handler.AnalyticsHandler
	Dataset   *handler.DatasetHandler
	Station   *handler.StationHandler
}

// SetupRouter configures the HTTP routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Verkehrsdaten Rosengartenstrasse API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		meta := api.Group("/meta")
		{
			meta.GET("/stations", h.Station.GetStations)
			meta.GET("/classes", h.Station.GetClasses)
		}

		traffic := api.Group("/traffic")
		{
			traffic.GET("/summary", h.Analytics.GetSummary)
			traffic.GET("/series", h.Analytics.GetSeries)
			traffic.GET("/profile", h.Analytics.GetHourlyProfile)
			traffic.GET("/weekday-profile", h.Analytics.GetWeekdayProfile)
			traffic.GET("/heatmap", h.Analytics.GetHeatmap)
			traffic.GET("/class-shares", h.Analytics.GetClassShares)
			traffic.GET("/direction-split", h.Analytics.GetDirectionSplit)
			traffic.GET("/monthly-trend", h.Analytics.GetMonthlyTrend)
			traffic.GET("/weekly-trend", h.Analytics.GetWeeklyTrend)
			traffic.GET("/yearly-comparison", h.Analytics.GetYearlyComparison)
			traffic.GET("/recent", h.Analytics.GetRecent)
		}

		quality := api.Group("/quality")
		{
			quality.GET("/gaps", h.Analytics.GetGaps)
			quality.GET("/anomalies", h.Dataset.GetAnomalies)
		}

		ds := api.Group("/dataset")
		{
			ds.GET("/status", h.Dataset.GetStatus)
			ds.POST("/refresh", middleware.Auth(cfg.JWTSecret), h.Dataset.Refresh)
		}
	}

	return r
}
