package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/repositories"
)

// CategoryReport is the audit view of one reporting range: every category's
// spent, earned and net amounts in display order, plus the grand totals per
// currency.
type CategoryReport struct {
	Categories []*models.ReportRow `json:"categories"`
	Sums       []*models.ReportRow `json:"sums"`
}

// CategoryReportGenerator combines income, expenses and both transfer
// directions into a single per-category report.
type CategoryReportGenerator interface {
	Generate(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) (*CategoryReport, error)
}

type categoryReportGenerator struct {
	chartBase
}

// NewCategoryReportGenerator creates the category report generator.
func NewCategoryReportGenerator(ops repositories.OperationsRepository, currencies repositories.CurrencyRepository, rates RateSource, labels Labels, logger *zap.Logger) CategoryReportGenerator {
	return &categoryReportGenerator{chartBase: newChartBase(ops, currencies, rates, labels, logger)}
}

// Generate folds all four operation listings into one aggregation run, so
// every category row nets income against expenses and the converter cache is
// shared across the listings.
func (g *categoryReportGenerator) Generate(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) (*CategoryReport, error) {
	opts, err := g.options(ctx)
	if err != nil {
		return nil, err
	}
	agg := g.aggregator.NewAggregation(opts)

	listings := []struct {
		name string
		list func(context.Context, time.Time, time.Time, []int, repositories.Dimension, []int) ([]*models.CurrencyGroup, error)
	}{
		{"income", g.ops.ListIncome},
		{"expenses", g.ops.ListExpenses},
		{"transfers in", g.ops.ListTransferredIn},
		{"transfers out", g.ops.ListTransferredOut},
	}
	for _, listing := range listings {
		groups, err := listing.list(ctx, start, end, accountIDs, repositories.DimensionCategory, categoryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", listing.name, err)
		}
		if err := g.aggregator.Accumulate(ctx, agg, groups, g.categoryTitle); err != nil {
			return nil, err
		}
	}

	return &CategoryReport{
		Categories: agg.SortedRows(),
		Sums:       agg.OrderedTotals(),
	}, nil
}
