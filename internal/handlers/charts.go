package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/repositories"
	"github.com/tdhoang/centavo/internal/services"
)

// ChartHandler serves the budget, category and tag report charts plus the
// transaction overview charts.
type ChartHandler struct {
	budgets      services.BudgetChartService
	categories   services.CategoryChartService
	tags         services.TagChartService
	transactions services.TransactionChartService
	lookup       repositories.LookupRepository
}

func NewChartHandler(budgets services.BudgetChartService, categories services.CategoryChartService, tags services.TagChartService, transactions services.TransactionChartService, lookup repositories.LookupRepository) *ChartHandler {
	return &ChartHandler{
		budgets:      budgets,
		categories:   categories,
		tags:         tags,
		transactions: transactions,
		lookup:       lookup,
	}
}

// pieFunc is one pie chart operation of a chart service.
type pieFunc func(ctx context.Context, accountIDs, ids []int, start, end time.Time) ([]*models.PieSlice, error)

// handlePie runs one pie chart endpoint: all of them share the same query
// parameters and response shape.
func (h *ChartHandler) handlePie(w http.ResponseWriter, r *http.Request, idParam string, fn pieFunc) {
	w.Header().Set("Content-Type", "application/json")

	start, end, err := parseDateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	accountIDs, err := parseIDs(r, "account_ids")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ids, err := parseIDs(r, idParam)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slices, err := fn(r.Context(), accountIDs, ids, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(slices)
}

// HandleBudgetPie handles GET /api/charts/budget/{group}-expense
// @Summary Budget report pie chart
// @Description Expenses of the budget report grouped by budget, category, source or destination account
// @Tags charts
// @Produce json
// @Param group path string true "Grouping: budget, category, source or destination"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param account_ids query string false "Comma-separated account ids"
// @Param budget_ids query string false "Comma-separated budget ids"
// @Success 200 {array} models.PieSlice
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/budget/{group}-expense [get]
func (h *ChartHandler) HandleBudgetPie(w http.ResponseWriter, r *http.Request) {
	var fn pieFunc
	switch mux.Vars(r)["group"] {
	case "budget":
		fn = h.budgets.BudgetExpense
	case "category":
		fn = h.budgets.CategoryExpense
	case "source":
		fn = h.budgets.SourceAccountExpense
	case "destination":
		fn = h.budgets.DestinationAccountExpense
	default:
		http.Error(w, "unknown grouping", http.StatusNotFound)
		return
	}
	h.handlePie(w, r, "budget_ids", fn)
}

// HandleCategoryPie handles GET /api/charts/category/{group}-{direction}
// @Summary Category report pie chart
// @Description Expenses or income of the category report grouped by category, budget, source or destination account
// @Tags charts
// @Produce json
// @Param group path string true "Grouping: category, budget, source or destination"
// @Param direction path string true "Direction: expense or income"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param account_ids query string false "Comma-separated account ids"
// @Param category_ids query string false "Comma-separated category ids"
// @Success 200 {array} models.PieSlice
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/category/{group}-{direction} [get]
func (h *ChartHandler) HandleCategoryPie(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["group"] + "-" + vars["direction"]

	var fn pieFunc
	switch key {
	case "category-expense":
		fn = h.categories.CategoryExpense
	case "category-income":
		fn = h.categories.CategoryIncome
	case "budget-expense":
		fn = h.categories.BudgetExpense
	case "source-expense":
		fn = h.categories.SourceExpense
	case "source-income":
		fn = h.categories.SourceIncome
	case "destination-expense":
		fn = h.categories.DestinationExpense
	case "destination-income":
		fn = h.categories.DestinationIncome
	default:
		http.Error(w, "unknown chart", http.StatusNotFound)
		return
	}
	h.handlePie(w, r, "category_ids", fn)
}

// HandleTagPie handles GET /api/charts/tag/{group}-{direction}
// @Summary Tag report pie chart
// @Description Expenses or income of the tag report grouped by tag, budget, category, source or destination account
// @Tags charts
// @Produce json
// @Param group path string true "Grouping: tag, budget, category, source or destination"
// @Param direction path string true "Direction: expense or income"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param account_ids query string false "Comma-separated account ids"
// @Param tag_ids query string false "Comma-separated tag ids"
// @Success 200 {array} models.PieSlice
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/tag/{group}-{direction} [get]
func (h *ChartHandler) HandleTagPie(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["group"] + "-" + vars["direction"]

	var fn pieFunc
	switch key {
	case "tag-expense":
		fn = h.tags.TagExpense
	case "tag-income":
		fn = h.tags.TagIncome
	case "budget-expense":
		fn = h.tags.BudgetExpense
	case "category-expense":
		fn = h.tags.CategoryExpense
	case "category-income":
		fn = h.tags.CategoryIncome
	case "source-expense":
		fn = h.tags.SourceExpense
	case "source-income":
		fn = h.tags.SourceIncome
	case "destination-expense":
		fn = h.tags.DestinationExpense
	case "destination-income":
		fn = h.tags.DestinationIncome
	default:
		http.Error(w, "unknown chart", http.StatusNotFound)
		return
	}
	h.handlePie(w, r, "tag_ids", fn)
}

// HandleTransactionBudgets handles GET /api/charts/transactions/budgets
// @Summary Transaction overview budget chart
// @Description All withdrawals in the range grouped by budget
// @Tags charts
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.PieSlice
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/transactions/budgets [get]
func (h *ChartHandler) HandleTransactionBudgets(w http.ResponseWriter, r *http.Request) {
	h.handleOverview(w, r, func(ctx context.Context, _ string, start, end time.Time) ([]*models.PieSlice, error) {
		return h.transactions.Budgets(ctx, start, end)
	})
}

// HandleTransactionPie handles GET /api/charts/transactions/{type}/{group}
// @Summary Transaction overview pie chart
// @Description All journals of one transaction type in the range grouped by category, source or destination account
// @Tags charts
// @Produce json
// @Param type path string true "Transaction type: withdrawal, deposit or transfer"
// @Param group path string true "Grouping: categories, source-accounts or destination-accounts"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} models.PieSlice
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/transactions/{type}/{group} [get]
func (h *ChartHandler) HandleTransactionPie(w http.ResponseWriter, r *http.Request) {
	var fn func(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error)
	switch mux.Vars(r)["group"] {
	case "categories":
		fn = h.transactions.Categories
	case "source-accounts":
		fn = h.transactions.SourceAccounts
	case "destination-accounts":
		fn = h.transactions.DestinationAccounts
	default:
		http.Error(w, "unknown grouping", http.StatusNotFound)
		return
	}
	h.handleOverview(w, r, fn)
}

func (h *ChartHandler) handleOverview(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error)) {
	w.Header().Set("Content-Type", "application/json")

	start, end, err := parseDateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slices, err := fn(r.Context(), mux.Vars(r)["type"], start, end)
	if err != nil {
		var invalid *apperrors.ErrValidation
		if errors.As(err, &invalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(slices)
}

// mainChartParams parses the shared parameters of the main chart endpoints.
func (h *ChartHandler) mainChartParams(w http.ResponseWriter, r *http.Request) (int, []int, time.Time, time.Time, bool) {
	w.Header().Set("Content-Type", "application/json")

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, nil, time.Time{}, time.Time{}, false
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, nil, time.Time{}, time.Time{}, false
	}
	accountIDs, err := parseIDs(r, "account_ids")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, nil, time.Time{}, time.Time{}, false
	}
	return id, accountIDs, start, end, true
}

// HandleBudgetMainChart handles GET /api/charts/budget/{id}/main
// @Summary Budget main chart
// @Description Spent-over-time bar series for one budget
// @Tags charts
// @Produce json
// @Param id path int true "Budget id"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param account_ids query string false "Comma-separated account ids"
// @Success 200 {array} models.ChartSeries
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/budget/{id}/main [get]
func (h *ChartHandler) HandleBudgetMainChart(w http.ResponseWriter, r *http.Request) {
	id, accountIDs, start, end, ok := h.mainChartParams(w, r)
	if !ok {
		return
	}
	budget, err := h.lookup.GetBudget(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	series, err := h.budgets.MainChart(r.Context(), accountIDs, budget, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(series)
}

// HandleCategoryMainChart handles GET /api/charts/category/{id}/main
// @Summary Category main chart
// @Description Spent and earned bar series for one category
// @Tags charts
// @Produce json
// @Param id path int true "Category id"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param account_ids query string false "Comma-separated account ids"
// @Success 200 {array} models.ChartSeries
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/category/{id}/main [get]
func (h *ChartHandler) HandleCategoryMainChart(w http.ResponseWriter, r *http.Request) {
	id, accountIDs, start, end, ok := h.mainChartParams(w, r)
	if !ok {
		return
	}
	category, err := h.lookup.GetCategory(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	series, err := h.categories.MainChart(r.Context(), accountIDs, category, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(series)
}

// HandleTagMainChart handles GET /api/charts/tag/{id}/main
// @Summary Tag main chart
// @Description Spent and earned bar series for one tag
// @Tags charts
// @Produce json
// @Param id path int true "Tag id"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param account_ids query string false "Comma-separated account ids"
// @Success 200 {array} models.ChartSeries
// @Failure 400 {string} string "Invalid parameters"
// @Router /charts/tag/{id}/main [get]
func (h *ChartHandler) HandleTagMainChart(w http.ResponseWriter, r *http.Request) {
	id, accountIDs, start, end, ok := h.mainChartParams(w, r)
	if !ok {
		return
	}
	tag, err := h.lookup.GetTag(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	series, err := h.tags.MainChart(r.Context(), accountIDs, tag, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(series)
}
