package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/shopdesk/internal/analytics/domain"
)

func (s *Server) GetDashboard(c *gin.Context) {
	var query struct {
		Start string `form:"start"`
		End   string `form:"end"`
		Limit string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	r, err := parseOptionalDateRange(query.Start, query.End)
	if err != nil {
		AbortWithError(c, newValidationError("range", "invalid_date_range", "invalid date range"))
		return
	}
	limit, err := parseOptionalInt(query.Limit)
	if err != nil || (limit != nil && *limit < 0) {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
		return
	}

	req := analyticsdomain.DashboardRequest{}
	if r != nil {
		req.Range = *r
	}
	if limit != nil {
		req.Limit = *limit
	}

	resp, err := s.analyticsSvc.Dashboard(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
