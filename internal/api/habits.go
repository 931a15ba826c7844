package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowstate/api/internal/service"
	"github.com/flowstate/api/internal/utils"
)

func (a *API) getTodayHabits(c *gin.Context) {
	day := c.DefaultQuery("date", utils.Today())

	habits, err := a.habits.GetHabitsForDate(currentUser(c), day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func (a *API) createHabit(c *gin.Context) {
	var input service.CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	habit, err := a.habits.CreateHabit(currentUser(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func (a *API) logHabit(c *gin.Context) {
	increment, err := strconv.Atoi(c.DefaultQuery("increment", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "increment must be an integer"})
		return
	}

	habit, err := a.habits.LogProgress(c.Param("habitId"), increment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

func (a *API) seedHabitHistory(c *gin.Context) {
	if err := a.habits.SeedHistory(currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "habit history seeded"})
}
