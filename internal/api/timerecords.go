package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowstate/api/internal/service"
)

func (a *API) getTimeRecords(c *gin.Context) {
	userID := currentUser(c)

	var (
		records interface{}
		err     error
	)
	if day := c.Query("date"); day != "" {
		records, err = a.timeRecords.GetForUserByDate(userID, day)
	} else {
		records, err = a.timeRecords.GetForUser(userID)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (a *API) createTimeRecord(c *gin.Context) {
	var input service.TimeRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := a.timeRecords.Create(currentUser(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (a *API) updateTimeRecord(c *gin.Context) {
	var input service.TimeRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := a.timeRecords.Update(c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (a *API) deleteTimeRecord(c *gin.Context) {
	if err := a.timeRecords.Delete(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
