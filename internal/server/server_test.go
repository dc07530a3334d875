package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	analyticsservice "github.com/smallbiznis/shopdesk/internal/analytics/service"
	catalogdomain "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/smallbiznis/shopdesk/internal/clock"
	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/smallbiznis/shopdesk/internal/export/registry"
	exportservice "github.com/smallbiznis/shopdesk/internal/export/service"
	"github.com/smallbiznis/shopdesk/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeCatalog struct {
	snap  catalogdomain.Snapshot
	err   error
	loads int
}

func (f *fakeCatalog) Snapshot(context.Context) (catalogdomain.Snapshot, error) {
	f.loads++
	return f.snap, f.err
}

func newTestServer(t *testing.T, cat *fakeCatalog) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))
	holder := config.NewStaticExportConfigHolder(config.DefaultExportConfig())

	return NewServer(ServerParams{
		Gin:        NewEngine(observability.Config{Environment: "test"}),
		Cfg:        config.Config{Environment: "test"},
		CatalogSvc: cat,
		AnalyticsSvc: analyticsservice.New(analyticsservice.Params{
			Log: log, Clock: fake, Config: holder, Catalog: cat,
		}),
		ExportSvc: exportservice.New(exportservice.Params{
			Log: log, Clock: fake, Config: holder, GenID: node,
			Registry: registry.New(registry.DefaultCapacity, nil),
		}),
	})
}

func testSnapshot() catalogdomain.Snapshot {
	return catalogdomain.Snapshot{
		Stores:     []catalogdomain.Store{{ID: 1, Name: "North"}},
		Categories: []catalogdomain.Category{{ID: 1, Name: "Bags"}},
		Products:   []catalogdomain.Product{{ID: 1, Name: "Tote", CategoryID: 1, StoreID: 1, Price: 1200, StockQuantity: 4}},
		Orders: []catalogdomain.Order{{
			ID: 1, CustomerID: 9, CreatedAt: time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC),
			Status: catalogdomain.OrderStatusDelivered, PaymentStatus: catalogdomain.PaymentStatusPaid,
			LineItems: []catalogdomain.LineItem{{ProductID: 1, Quantity: 1, Price: 1200}},
		}},
	}
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	s.Engine().ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var out errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out.Error
}

type artifactBody struct {
	Data struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Kind string `json:"kind"`
	} `json:"data"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{})

	resp := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

func TestDashboardDefaultRange(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{snap: testSnapshot()})

	resp := do(t, s, http.MethodGet, "/api/analytics/dashboard", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Data struct {
			Start    string `json:"start"`
			End      string `json:"end"`
			Overview struct {
				TotalRevenue int64 `json:"total_revenue"`
			} `json:"overview"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-09", body.Data.Start)
	assert.Equal(t, "2024-06-15", body.Data.End)
	assert.Equal(t, int64(1200), body.Data.Overview.TotalRevenue)
}

func TestDashboardRejectsHalfRange(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{})

	resp := do(t, s, http.MethodGet, "/api/analytics/dashboard?start=2024-06-01", "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "validation_error", decodeError(t, resp).Type)
}

func TestDashboardSnapshotUnavailable(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{err: catalogdomain.ErrSnapshotUnavailable})

	resp := do(t, s, http.MethodGet, "/api/analytics/dashboard", "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestExportLifecycle(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{snap: testSnapshot()})

	resp := do(t, s, http.MethodPost, "/api/exports", `{"categories":["overview","top_stores"],"format":"xlsx","start":"2024-06-01","end":"2024-06-14"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created artifactBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "Analytics_Report_2024-06-01_to_2024-06-14.xlsx", created.Data.Name)
	assert.Equal(t, "WORKBOOK", created.Data.Kind)

	resp = do(t, s, http.MethodGet, "/api/exports?sort=name&order=asc", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "no-store", resp.Header().Get("Cache-Control"))
	var listed struct {
		Data []struct {
			ID        string `json:"id"`
			SizeLabel string `json:"size_label"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, created.Data.ID, listed.Data[0].ID)
	assert.Contains(t, listed.Data[0].SizeLabel, "KB")

	resp = do(t, s, http.MethodGet, "/api/exports/"+created.Data.ID+"/download", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Analytics_Report_2024-06-01_to_2024-06-14.xlsx`, resp.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("PK")))

	resp = do(t, s, http.MethodDelete, "/api/exports/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(t, s, http.MethodDelete, "/api/exports/"+created.Data.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateExportValidation(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{snap: testSnapshot()})

	cases := []struct {
		name  string
		body  string
		field string
		code  string
	}{
		{"bad format", `{"categories":["overview"],"format":"csv"}`, "format", "invalid_format"},
		{"bad category", `{"categories":["customers"],"format":"pdf"}`, "categories", "invalid_category"},
		{"nothing selected", `{"categories":[],"format":"pdf"}`, "categories", "nothing_selected"},
		{"reversed range", `{"categories":["overview"],"format":"pdf","start":"2024-06-10","end":"2024-06-01"}`, "range", "invalid_date_range"},
		{"unparseable range", `{"categories":["overview"],"format":"pdf","start":"June","end":"2024-06-01"}`, "range", "invalid_date_range"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, s, http.MethodPost, "/api/exports", tc.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			payload := decodeError(t, resp)
			require.Len(t, payload.Errors, 1)
			assert.Equal(t, tc.field, payload.Errors[0].Field)
			assert.Equal(t, tc.code, payload.Errors[0].Code)
		})
	}

	resp := do(t, s, http.MethodGet, "/api/exports", "")
	assert.JSONEq(t, `{"data":[]}`, resp.Body.String())
}

func TestCreateExportRejectsBeforeLoadingCatalog(t *testing.T) {
	cat := &fakeCatalog{err: catalogdomain.ErrSnapshotUnavailable}
	s := newTestServer(t, cat)

	for _, body := range []string{
		`{"categories":["overview"],"format":"pdf","start":"2024-06-10","end":"2024-06-01"}`,
		`{"categories":["overview"],"format":"pdf","start":"2024-06-10","end":"2024-07-01"}`,
		`{"categories":["overview"],"format":"pdf","start":"2019-12-31","end":"2024-06-01"}`,
		`{"categories":[],"format":"xlsx"}`,
	} {
		resp := do(t, s, http.MethodPost, "/api/exports", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, body)
	}
	assert.Zero(t, cat.loads)

	resp := do(t, s, http.MethodPost, "/api/exports", `{"categories":["overview"],"format":"pdf"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, 1, cat.loads)
}

func TestCreateExportEmpty(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{})

	resp := do(t, s, http.MethodPost, "/api/exports", `{"categories":["date_series"],"format":"archive","start":"2024-06-01","end":"2024-06-14"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "empty_export", decodeError(t, resp).Type)
}

func TestBulkDeleteAndClear(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{snap: testSnapshot()})

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		resp := do(t, s, http.MethodPost, "/api/exports", `{"categories":["overview"],"format":"pdf"}`)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
		var created artifactBody
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
		ids = append(ids, created.Data.ID)
	}

	resp := do(t, s, http.MethodPost, "/api/exports/bulk-delete", `{"ids":["`+ids[0]+`","missing"]}`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"succeeded":1,"failed":1,"failed_ids":["missing"]}}`, resp.Body.String())

	resp = do(t, s, http.MethodPost, "/api/exports/bulk-delete", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, s, http.MethodDelete, "/api/exports", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"data":{"removed":2}}`, resp.Body.String())
}

func TestListExportsRejectsUnknownSort(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{})

	resp := do(t, s, http.MethodGet, "/api/exports?sort=color", "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid_sort_key", decodeError(t, resp).Errors[0].Code)
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{})

	resp := do(t, s, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
