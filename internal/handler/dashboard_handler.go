package handler

import (
	"net/http"
	"strconv"

	"github.com/abim/abim-backend/internal/response"
	"github.com/abim/abim-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardHandler serves the admin dashboard counters and activity feed.
type DashboardHandler struct {
	statsService    *service.StatsService
	activityService *service.ActivityService
	log             zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(statsService *service.StatsService, activityService *service.ActivityService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService:    statsService,
		activityService: activityService,
		log:             log.With().Str("component", "dashboard_handler").Logger(),
	}
}

// GetStats godoc
// GET /api/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.ComputeStats(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListActivities godoc
// GET /api/activities?limit=10
func (h *DashboardHandler) ListActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	activities, err := h.activityService.Recent(c.Request.Context(), limit)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activities": activities})
}
