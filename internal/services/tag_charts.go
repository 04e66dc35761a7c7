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

type tagChartService struct {
	chartBase
}

// NewTagChartService creates the tag report chart service.
func NewTagChartService(ops repositories.OperationsRepository, currencies repositories.CurrencyRepository, rates RateSource, labels Labels, logger *zap.Logger) TagChartService {
	return &tagChartService{chartBase: newChartBase(ops, currencies, rates, labels, logger)}
}

func (s *tagChartService) expenses(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.CurrencyGroup, error) {
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionTag, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return groups, nil
}

func (s *tagChartService) income(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.CurrencyGroup, error) {
	groups, err := s.ops.ListIncome(ctx, start, end, accountIDs, repositories.DimensionTag, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return groups, nil
}

// TagExpense groups the tag report's expenses by tag.
func (s *tagChartService) TagExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.tagTitle)
}

// TagIncome groups the tag report's income by tag.
func (s *tagChartService) TagIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.tagTitle)
}

// BudgetExpense groups the tag report's expenses by budget.
func (s *tagChartService) BudgetExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.budgetTitle)
}

// CategoryExpense groups the tag report's expenses by category.
func (s *tagChartService) CategoryExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.categoryTitle)
}

// CategoryIncome groups the tag report's income by category.
func (s *tagChartService) CategoryIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.categoryTitle)
}

// SourceExpense groups the tag report's expenses by source account.
func (s *tagChartService) SourceExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.sourceTitle)
}

// SourceIncome groups the tag report's income by source account.
func (s *tagChartService) SourceIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.sourceTitle)
}

// DestinationExpense groups the tag report's expenses by destination account.
func (s *tagChartService) DestinationExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.expenses(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.destinationTitle)
}

// DestinationIncome groups the tag report's income by destination account.
func (s *tagChartService) DestinationIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.income(ctx, accountIDs, tagIDs, start, end)
	if err != nil {
		return nil, err
	}
	return s.pie(ctx, groups, s.destinationTitle)
}

// MainChart builds the spent and earned bar series for a single tag.
func (s *tagChartService) MainChart(ctx context.Context, accountIDs []int, tag *models.Tag, start, end time.Time) ([]*models.ChartSeries, error) {
	opts, err := s.options(ctx)
	if err != nil {
		return nil, err
	}
	builder, err := NewSeriesBuilder(start, end, periods.Preferred(start, end))
	if err != nil {
		return nil, err
	}
	agg := s.aggregator.NewAggregation(opts)

	ids := []int{tag.ID}
	expenses, err := s.expenses(ctx, accountIDs, ids, start, end)
	if err != nil {
		return nil, err
	}
	err = s.addSeries(ctx, builder, agg, opts, expenses, func(currency models.Currency) string {
		return fmt.Sprintf(s.labels.SpentInTag, tag.Name, currency.Name)
	})
	if err != nil {
		return nil, err
	}

	income, err := s.income(ctx, accountIDs, ids, start, end)
	if err != nil {
		return nil, err
	}
	err = s.addSeries(ctx, builder, agg, opts, income, func(currency models.Currency) string {
		return fmt.Sprintf(s.labels.EarnedInTag, tag.Name, currency.Name)
	})
	if err != nil {
		return nil, err
	}
	return builder.Series(), nil
}
