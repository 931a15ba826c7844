package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flowstate/api/internal/constants"
	"github.com/flowstate/api/internal/service"
	"github.com/flowstate/api/internal/utils"
)

// dateRange reads the startDate/endDate query params, defaulting to the
// trailing seven days ending today.
func dateRange(c *gin.Context) (string, string) {
	now := time.Now()
	from := c.DefaultQuery("startDate", utils.FormatDay(now.AddDate(0, 0, -(constants.LastSevenDays-1))))
	to := c.DefaultQuery("endDate", utils.FormatDay(now))
	return from, to
}

func (a *API) getTimeAllocation(c *gin.Context) {
	from, to := dateRange(c)

	allocation, err := a.analytics.GetTimeAllocation(currentUser(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, allocation)
}

func (a *API) getHabitConsistency(c *gin.Context) {
	from, to := dateRange(c)

	consistency, err := a.analytics.GetHabitConsistency(currentUser(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, consistency)
}

// getHabitHeatmap serves the year-scoped heatmap. A missing or
// malformed year falls back to the current year.
func (a *API) getHabitHeatmap(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		year = service.CurrentYear()
	}

	heatmap, err := a.analytics.GetHeatmapForYear(currentUser(c), year)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, heatmap)
}

// getHeatmap serves the heatmap for an explicit range, falling back to
// the year view when the range is not fully specified.
func (a *API) getHeatmap(c *gin.Context) {
	from := c.Query("startDate")
	to := c.Query("endDate")
	if from == "" || to == "" {
		a.getHabitHeatmap(c)
		return
	}

	heatmap, err := a.analytics.GetHeatmapForRange(currentUser(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, heatmap)
}

func (a *API) getAchievements(c *gin.Context) {
	from, to := dateRange(c)

	achievement, err := a.analytics.GetAchievements(currentUser(c), from, to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, achievement)
}
