package server

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	exportdomain "github.com/smallbiznis/shopdesk/internal/export/domain"
)

type createExportRequest struct {
	Categories []string `json:"categories"`
	Format     string   `json:"format"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
}

type bulkDeleteExportsRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) CreateExport(c *gin.Context) {
	var req createExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	format, err := exportdomain.ParseFormat(req.Format)
	if err != nil {
		AbortWithError(c, newValidationError("format", "invalid_format", "invalid format"))
		return
	}
	c.Set(contextExportFormatKey, string(format))

	categories := make([]exportdomain.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		category, err := exportdomain.ParseCategory(raw)
		if err != nil {
			AbortWithError(c, newValidationError("categories", "invalid_category", fmt.Sprintf("unknown category %q", strings.TrimSpace(raw))))
			return
		}
		categories = append(categories, category)
	}

	r, err := parseOptionalDateRange(req.Start, req.End)
	if err != nil {
		AbortWithError(c, newValidationError("range", "invalid_date_range", "invalid date range"))
		return
	}
	dateRange := s.exportSvc.DefaultRange()
	if r != nil {
		dateRange = *r
	}

	exportReq := exportdomain.Request{
		Categories: categories,
		Format:     format,
		Range:      dateRange,
	}
	if err := s.exportSvc.Validate(exportReq); err != nil {
		AbortWithError(c, err)
		return
	}

	snapshot, err := s.catalogSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := s.exportSvc.Run(c.Request.Context(), snapshot, exportReq)
	switch out.Status {
	case exportdomain.StatusSucceeded:
		c.JSON(http.StatusCreated, gin.H{"data": out.Artifact})
	case exportdomain.StatusFailed:
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInternal, out.Err))
	default:
		AbortWithError(c, out.Err)
	}
}

func (s *Server) ListExports(c *gin.Context) {
	var query struct {
		Sort  string `form:"sort"`
		Order string `form:"order"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.exportSvc.List(c.Request.Context(), exportdomain.ListRequest{
		SortBy:  exportdomain.SortKey(strings.ToLower(strings.TrimSpace(query.Sort))),
		OrderBy: exportdomain.SortDirection(strings.ToLower(strings.TrimSpace(query.Order))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadExport(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	dl, err := s.exportSvc.Download(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dl.Filename}))
	c.Data(http.StatusOK, dl.ContentType, dl.Payload)
}

func (s *Server) DeleteExport(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.exportSvc.Remove(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) BulkDeleteExports(c *gin.Context) {
	var req bulkDeleteExportsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.IDs) == 0 {
		AbortWithError(c, newValidationError("ids", "required", "ids are required"))
		return
	}

	result := s.exportSvc.RemoveMany(c.Request.Context(), req.IDs)
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ClearExports(c *gin.Context) {
	removed := s.exportSvc.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"removed": removed}})
}
