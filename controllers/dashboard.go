package controllers

import (
	"net/http"
	"strconv"

	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard  *services.DashboardService
	activities *services.ActivityService
}

func NewDashboardController(dashboard *services.DashboardService, activities *services.ActivityService) *DashboardController {
	return &DashboardController{dashboard: dashboard, activities: activities}
}

// GetStats returns the dashboard for the current month unless startDate/endDate are given
func (dc *DashboardController) GetStats(c *gin.Context) {
	window, err := utils.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.MsgInvalidDate)
		return
	}

	stats, err := dc.dashboard.Stats(c.Request.Context(), window)
	if err != nil {
		respondServiceError(c, err, utils.MsgDashboardFetchFail, utils.MsgDashboardFetchFail)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetActivities returns the most recent activity log entries
func (dc *DashboardController) GetActivities(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.MsgActivitiesFail)
			return
		}
		limit = n
	}

	activities, err := dc.activities.Recent(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, utils.MsgActivitiesFail, utils.MsgActivitiesFail)
		return
	}
	c.JSON(http.StatusOK, activities)
}
