package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/repositories"
)

// chartBase carries the collaborators every chart service shares: the
// operations listings, the currency preferences, and the aggregation engine.
type chartBase struct {
	ops        repositories.OperationsRepository
	currencies repositories.CurrencyRepository
	aggregator *Aggregator
	labels     Labels
	logger     *zap.Logger
}

func newChartBase(ops repositories.OperationsRepository, currencies repositories.CurrencyRepository, rates RateSource, labels Labels, logger *zap.Logger) chartBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return chartBase{
		ops:        ops,
		currencies: currencies,
		aggregator: NewAggregator(rates, logger),
		labels:     labels,
		logger:     logger,
	}
}

// options resolves the user's conversion preference into aggregation options.
// The primary currency is resolved for native runs too: their totals still
// order the primary currency's row first.
func (b chartBase) options(ctx context.Context) (Options, error) {
	convert, err := b.currencies.ConvertToPrimary(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("failed to resolve conversion preference: %w", err)
	}
	primary, err := b.currencies.GetPrimaryCurrency(ctx)
	if err != nil {
		if convert {
			return Options{}, fmt.Errorf("failed to resolve primary currency: %w", err)
		}
		// Without a primary preference a native run just loses the
		// primary-first totals ordering.
		return Options{Mode: ModeNative}, nil
	}
	if !convert {
		return Options{Mode: ModeNative, Primary: *primary}, nil
	}
	return Options{Mode: ModePrimary, Primary: *primary}, nil
}

// pie runs one listing through the aggregator and renders it as pie slices.
func (b chartBase) pie(ctx context.Context, groups []*models.CurrencyGroup, title TitleFunc) ([]*models.PieSlice, error) {
	opts, err := b.options(ctx)
	if err != nil {
		return nil, err
	}
	agg, err := b.aggregator.Aggregate(ctx, groups, title, opts)
	if err != nil {
		return nil, err
	}
	return PieChart(agg, opts.Mode), nil
}

// Title extractors shared by the chart services. Each falls back to the
// configured placeholder when the journal carries no classification.

func (b chartBase) budgetTitle(journal *models.Journal, group *models.DimensionGroup) string {
	if group != nil && group.Name != "" {
		return group.Name
	}
	if journal.BudgetName != "" {
		return journal.BudgetName
	}
	return b.labels.NoBudget
}

func (b chartBase) categoryTitle(journal *models.Journal, group *models.DimensionGroup) string {
	if group != nil && group.Name != "" {
		return group.Name
	}
	if journal.CategoryName != "" {
		return journal.CategoryName
	}
	return b.labels.NoCategory
}

func (b chartBase) tagTitle(journal *models.Journal, group *models.DimensionGroup) string {
	if group != nil && group.Name != "" {
		return group.Name
	}
	return b.labels.Empty
}

func (b chartBase) sourceTitle(journal *models.Journal, _ *models.DimensionGroup) string {
	if journal.SourceAccountName != "" {
		return journal.SourceAccountName
	}
	return b.labels.Empty
}

func (b chartBase) destinationTitle(journal *models.Journal, _ *models.DimensionGroup) string {
	if journal.DestinationAccountName != "" {
		return journal.DestinationAccountName
	}
	return b.labels.Empty
}

// addSeries folds one listing into a main-chart series builder. The data set
// label depends on the currency name, so the caller supplies it per currency;
// in primary mode every journal lands in the primary currency's series.
func (b chartBase) addSeries(ctx context.Context, builder *SeriesBuilder, agg *Aggregation, opts Options, groups []*models.CurrencyGroup, format func(currency models.Currency) string) error {
	add := func(currency models.Currency, journal *models.Journal) error {
		amount := journal.Amount
		if opts.Mode == ModePrimary {
			converted, err := b.aggregator.PrimaryAmount(ctx, agg, journal)
			if err != nil {
				return err
			}
			amount = converted
			currency = opts.Primary
		}
		builder.Add(format(currency), currency, journal.Date, amount)
		return nil
	}

	for _, group := range groups {
		for _, journal := range group.Journals {
			if err := add(group.Currency, journal); err != nil {
				return err
			}
		}
		for _, item := range group.Groups {
			for _, journal := range item.Journals {
				if err := add(group.Currency, journal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
