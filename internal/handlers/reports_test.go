package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/repositories"
	"github.com/tdhoang/centavo/internal/services"
)

type fakeReportGenerator struct {
	report *services.CategoryReport
}

func (f *fakeReportGenerator) Generate(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) (*services.CategoryReport, error) {
	return f.report, nil
}

type fakeListings struct {
	listing string
	dim     repositories.Dimension
	groups  []*models.CurrencyGroup
}

func (f *fakeListings) list(name string, dim repositories.Dimension) ([]*models.CurrencyGroup, error) {
	f.listing = name
	f.dim = dim
	return f.groups, nil
}

func (f *fakeListings) ListByType(ctx context.Context, start, end time.Time, transactionType string) ([]*models.CurrencyGroup, error) {
	return f.list("by-type", repositories.DimensionNone)
}

func (f *fakeListings) ListExpenses(ctx context.Context, start, end time.Time, accountIDs []int, dim repositories.Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return f.list("expenses", dim)
}

func (f *fakeListings) ListIncome(ctx context.Context, start, end time.Time, accountIDs []int, dim repositories.Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return f.list("income", dim)
}

func (f *fakeListings) ListTransferredIn(ctx context.Context, start, end time.Time, accountIDs []int, dim repositories.Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return f.list("transfers-in", dim)
}

func (f *fakeListings) ListTransferredOut(ctx context.Context, start, end time.Time, accountIDs []int, dim repositories.Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return f.list("transfers-out", dim)
}

func newReportRouter(h *ReportHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/reports/category", h.HandleCategoryReport).Methods("GET")
	router.HandleFunc("/api/operations/{listing}", h.HandleOperations).Methods("GET")
	return router
}

func TestHandleCategoryReport(t *testing.T) {
	generator := &fakeReportGenerator{report: &services.CategoryReport{
		Categories: []*models.ReportRow{{Title: "Groceries", Sum: decimal.RequireFromString("70")}},
		Sums:       []*models.ReportRow{{Sum: decimal.RequireFromString("70")}},
	}}
	router := newReportRouter(NewReportHandler(generator, &fakeListings{}))

	req := httptest.NewRequest("GET", "/api/reports/category?start=2023-06-01&end=2023-06-30", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report services.CategoryReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.Len(t, report.Categories, 1)
	assert.Equal(t, "Groceries", report.Categories[0].Title)
}

func TestHandleOperationsRoutesListings(t *testing.T) {
	tests := []struct {
		path    string
		query   string
		listing string
		dim     repositories.Dimension
	}{
		{"expenses", "dimension=budget", "expenses", repositories.DimensionBudget},
		{"income", "dimension=category", "income", repositories.DimensionCategory},
		{"transfers-in", "dimension=tag", "transfers-in", repositories.DimensionTag},
		{"transfers-out", "", "transfers-out", repositories.DimensionNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ops := &fakeListings{}
			router := newReportRouter(NewReportHandler(&fakeReportGenerator{}, ops))

			req := httptest.NewRequest("GET", "/api/operations/"+tt.path+"?start=2023-06-01&end=2023-06-30&"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.listing, ops.listing)
			assert.Equal(t, tt.dim, ops.dim)
		})
	}
}

func TestHandleOperationsRejectsUnknowns(t *testing.T) {
	router := newReportRouter(NewReportHandler(&fakeReportGenerator{}, &fakeListings{}))

	req := httptest.NewRequest("GET", "/api/operations/bogus?start=2023-06-01&end=2023-06-30", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest("GET", "/api/operations/expenses?start=2023-06-01&end=2023-06-30&dimension=bogus", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
