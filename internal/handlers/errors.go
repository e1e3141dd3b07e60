package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arenalab/rooms-admin/internal/monitor"
)

// writeError converts the error taxonomy into the HTTP response contract:
// guard rejections are 403, unknown custom actions 404, unreachable rooms and
// anything else 500. Every body is {error:true, message}.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var permErr *monitor.PermissionError
	var notFoundErr *monitor.ActionNotFoundError
	var unavailableErr *monitor.RoomUnavailableError
	switch {
	case errors.As(err, &permErr):
		status = http.StatusForbidden
		err = permErr
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
		err = notFoundErr
	case errors.As(err, &unavailableErr):
		err = unavailableErr
	}

	c.JSON(status, gin.H{"error": true, "message": err.Error()})
}
