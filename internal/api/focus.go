package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowstate/api/internal/service"
)

func (a *API) createFocusSession(c *gin.Context) {
	var input service.FocusSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := a.focus.Create(currentUser(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (a *API) getFocusSessions(c *gin.Context) {
	sessions, err := a.focus.GetForUser(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (a *API) getFocusTodayStats(c *gin.Context) {
	stats, err := a.focus.GetTodayStats(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
