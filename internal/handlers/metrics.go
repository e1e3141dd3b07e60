package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/arenalab/rooms-admin/internal/metrics"
)

// Metrics handles GET /metrics with a point-in-time host usage snapshot.
func Metrics(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := metrics.Collect()
		if err != nil {
			log.WithError(err).Error("metrics probe failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}
