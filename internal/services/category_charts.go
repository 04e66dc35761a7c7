package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/periods"
	"github.com/tdhoang/centavo/internal/repositories"
)

type categoryChartService struct {
	chartBase
}

// NewCategoryChartService creates the category report chart service.
func NewCategoryChartService(ops repositories.OperationsRepository, currencies repositories.CurrencyRepository, rates RateSource, labels Labels, logger *zap.Logger) CategoryChartService {
	return &categoryChartService{chartBase: newChartBase(ops, currencies, rates, labels, logger)}
}

func (s *categoryChartService) expenses(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.CurrencyGroup, error) {
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionCategory, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return groups, nil
}

func (s *categoryChartService) income(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.CurrencyGroup, error) {
	groups, err := s.ops.ListIncome(ctx, start, end, accountIDs, repositories.DimensionCategory, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return groups, nil
}

// CategoryExpense groups the category report's expenses by category.
func (s *categoryChartService) CategoryExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.categoryTitle)
}

// CategoryIncome groups the category report's income by category.
func (s *categoryChartService) CategoryIncome(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.categoryTitle)
}

// BudgetExpense groups the category report's expenses by budget.
func (s *categoryChartService) BudgetExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.budgetTitle)
}

// SourceExpense groups the category report's expenses by source account.
func (s *categoryChartService) SourceExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.sourceTitle)
}

// SourceIncome groups the category report's income by source account.
func (s *categoryChartService) SourceIncome(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.sourceTitle)
}

// DestinationExpense groups the category report's expenses by destination
// account.
func (s *categoryChartService) DestinationExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.destinationTitle)
}

// DestinationIncome groups the category report's income by destination account.
func (s *categoryChartService) DestinationIncome(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, categoryIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.destinationTitle)
}

// MainChart builds the spent and earned bar series for a single category.
func (s *categoryChartService) MainChart(ctx context.Context, accountIDs []int, category *models.Category, start, end time.Time) ([]*models.ChartSeries, error) {
	opts, err := s.options(ctx)
	if err != nil {
		return nil, err
	}
	builder, err := NewSeriesBuilder(start, end, periods.Preferred(start, end))
	if err != nil {
		return nil, err
	}
	agg := s.aggregator.NewAggregation(opts)

	ids := []int{category.ID}
	expenses, err := s.expenses(ctx, accountIDs, ids, start, end)
	if err != nil {
		return nil, err
	}
	err = s.addSeries(ctx, builder, agg, opts, expenses, func(currency models.Currency) string {
		return fmt.Sprintf(s.labels.SpentInCategory, category.Name, currency.Name)
	})
	if err != nil {
		return nil, err
	}

	income, err := s.income(ctx, accountIDs, ids, start, end)
	if err != nil {
		return nil, err
	}
	err = s.addSeries(ctx, builder, agg, opts, income, func(currency models.Currency) string {
		return fmt.Sprintf(s.labels.EarnedInCategory, category.Name, currency.Name)
	})
	if err != nil {
		return nil, err
	}
	return builder.Series(), nil
}
