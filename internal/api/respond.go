package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/logger"
)

// fail maps a service error onto its HTTP status. Unclassified errors
// become a 500 with a generic body so internals never leak.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindInvalid:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
