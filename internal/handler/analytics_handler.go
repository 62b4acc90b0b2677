package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/aggregate"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/filter"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/models"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/service"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/pkg/response"
)

// AnalyticsHandler handles HTTP requests for traffic analytics
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetSummary handles GET /api/v1/traffic/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.analytics.Summary(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, summary)
}

// GetSeries handles GET /api/v1/traffic/series
func (h *AnalyticsHandler) GetSeries(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	mode := models.BucketMode(c.DefaultQuery("bucket", string(models.BucketDay)))
	spec, err := h.analytics.Series(criteria, mode)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetHourlyProfile handles GET /api/v1/traffic/profile
func (h *AnalyticsHandler) GetHourlyProfile(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dim := aggregate.GroupDimension(c.DefaultQuery("groupBy", string(aggregate.GroupDirection)))
	spec, err := h.analytics.HourlyProfile(criteria, dim)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetWeekdayProfile handles GET /api/v1/traffic/weekday-profile
func (h *AnalyticsHandler) GetWeekdayProfile(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dim := aggregate.GroupDimension(c.DefaultQuery("groupBy", string(aggregate.GroupDirection)))
	spec, err := h.analytics.WeekdayProfile(criteria, dim)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetHeatmap handles GET /api/v1/traffic/heatmap
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	spec, err := h.analytics.Heatmap(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetClassShares handles GET /api/v1/traffic/class-shares
func (h *AnalyticsHandler) GetClassShares(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	spec, err := h.analytics.ClassShares(criteria, c.DefaultQuery("level", "class"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetDirectionSplit handles GET /api/v1/traffic/direction-split
func (h *AnalyticsHandler) GetDirectionSplit(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	spec, err := h.analytics.DirectionSplit(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetMonthlyTrend handles GET /api/v1/traffic/monthly-trend
func (h *AnalyticsHandler) GetMonthlyTrend(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	spec, err := h.analytics.MonthlyTrend(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetWeeklyTrend handles GET /api/v1/traffic/weekly-trend
func (h *AnalyticsHandler) GetWeeklyTrend(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	spec, err := h.analytics.WeeklyTrend(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetYearlyComparison handles GET /api/v1/traffic/yearly-comparison
func (h *AnalyticsHandler) GetYearlyComparison(c *gin.Context) {
	criteria, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dtv, totals, err := h.analytics.YearlyComparison(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"dtv":    dtv,
		"totals": totals,
	})
}

// GetRecent handles GET /api/v1/traffic/recent
func (h *AnalyticsHandler) GetRecent(c *gin.Context) {
	spec, err := h.analytics.Recent()
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, spec)
}

// GetGaps handles GET /api/v1/quality/gaps
func (h *AnalyticsHandler) GetGaps(c *gin.Context) {
	report, err := h.analytics.Gaps()
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, report)
}

// parseFilter builds FilterCriteria from query parameters. Empty
// parameters leave the corresponding dimension unrestricted.
func parseFilter(c *gin.Context) (models.FilterCriteria, error) {
	var criteria models.FilterCriteria

	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return criteria, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", s)
		}
		criteria.Start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return criteria, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", s)
		}
		criteria.End = t
	}

	classes, err := parseIntList(c.Query("classes"))
	if err != nil {
		return criteria, fmt.Errorf("invalid classes parameter: %w", err)
	}
	criteria.Classes = classes

	weekdays, err := parseIntList(c.Query("weekdays"))
	if err != nil {
		return criteria, fmt.Errorf("invalid weekdays parameter: %w", err)
	}
	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return criteria, fmt.Errorf("invalid weekday %d, expected 0 (Monday) to 6 (Sunday)", wd)
		}
	}
	criteria.Weekdays = weekdays

	criteria.Directions = parseStringList(c.Query("directions"))
	criteria.Lanes = parseStringList(c.Query("lanes"))

	return criteria, nil
}

func parseIntList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var values []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// respondError maps pipeline errors to their HTTP representation: an
// inverted range is a user validation problem, an empty result is an
// informational no-data state, a missing dataset means the service is
// not ready yet.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidRange):
		response.BadRequest(c, err.Error())
	case errors.Is(err, aggregate.ErrEmptyInput):
		response.NoData(c)
	case errors.Is(err, service.ErrNoDataset):
		response.Error(c, http.StatusServiceUnavailable, "dataset not loaded yet, trigger a refresh")
	default:
		response.InternalError(c, err.Error())
	}
}
