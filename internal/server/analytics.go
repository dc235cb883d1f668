package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardAnalytics serves the aggregated dashboard snapshot. Responses
// within the cache TTL are identical and never touch the store.
func (s *Server) GetDashboardAnalytics(c *gin.Context) {
	snapshot, err := s.analyticsSvc.GetDashboardAnalytics(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
