package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/money"
)

// Mode controls how the aggregator treats currencies.
type Mode int

const (
	// ModeNative keeps every currency separate: rows are keyed by currency
	// and title, so amounts in different currencies never mix.
	ModeNative Mode = iota
	// ModePrimary converts every amount into the primary currency before
	// accumulation; rows are keyed by title alone.
	ModePrimary
)

// TitleFunc extracts the display title for a journal. For listings with a
// grouping dimension the dimension item is passed too; it is nil for flat
// listings.
type TitleFunc func(journal *models.Journal, group *models.DimensionGroup) string

// Options configures one aggregation run. Primary is required in ModePrimary;
// in ModeNative it is optional and only influences totals ordering.
type Options struct {
	Mode    Mode
	Primary models.Currency
}

// Aggregator is the shared grouping engine behind every chart and report
// view. It owns no state between runs; each run gets a fresh Aggregation and
// a fresh converter cache.
type Aggregator struct {
	source RateSource
	logger *zap.Logger
}

// NewAggregator creates an aggregator over a rate source.
func NewAggregator(source RateSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{source: source, logger: logger}
}

// Aggregation accumulates rows and per-currency totals during one report run.
// Rows are keyed by "<currency id>-<title>" in native mode and by title alone
// in primary mode.
type Aggregation struct {
	Rows   map[string]*models.ReportRow
	Totals map[int]*models.ReportRow

	mode      Mode
	primary   models.Currency
	converter *Converter
}

// NewAggregation starts an empty run. In primary mode the primary currency's
// totals row is created up front so it is present even for empty reports.
func (a *Aggregator) NewAggregation(opts Options) *Aggregation {
	agg := &Aggregation{
		Rows:      make(map[string]*models.ReportRow),
		Totals:    make(map[int]*models.ReportRow),
		mode:      opts.Mode,
		primary:   opts.Primary,
		converter: NewConverter(a.source),
	}
	if opts.Mode == ModePrimary {
		agg.Totals[opts.Primary.ID] = &models.ReportRow{Currency: opts.Primary}
	}
	return agg
}

// Aggregate runs a complete aggregation over one listing.
func (a *Aggregator) Aggregate(ctx context.Context, groups []*models.CurrencyGroup, title TitleFunc, opts Options) (*Aggregation, error) {
	agg := a.NewAggregation(opts)
	if err := a.Accumulate(ctx, agg, groups, title); err != nil {
		return nil, err
	}
	return agg, nil
}

// Accumulate folds one operations listing into a run. Report generators call
// it several times (income, expenses, transfers) against the same run; the
// converter cache spans all of them. It either processes the whole listing or
// returns an error; there is no partial accumulation visible to the caller.
func (a *Aggregator) Accumulate(ctx context.Context, agg *Aggregation, groups []*models.CurrencyGroup, title TitleFunc) error {
	for _, group := range groups {
		if len(group.Groups) == 0 {
			for _, journal := range group.Journals {
				if err := a.accumulateJournal(ctx, agg, group.Currency, journal, title(journal, nil)); err != nil {
					return err
				}
			}
			continue
		}
		for _, item := range group.Groups {
			for _, journal := range item.Journals {
				if err := a.accumulateJournal(ctx, agg, group.Currency, journal, title(journal, item)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (a *Aggregator) accumulateJournal(ctx context.Context, agg *Aggregation, currency models.Currency, journal *models.Journal, title string) error {
	amount := journal.Amount
	rowCurrency := currency
	key := fmt.Sprintf("%d-%s", currency.ID, title)

	if agg.mode == ModePrimary {
		converted, err := a.primaryAmount(ctx, agg, journal)
		if err != nil {
			return err
		}
		amount = converted
		rowCurrency = agg.primary
		key = title
	}

	row, ok := agg.Rows[key]
	if !ok {
		row = &models.ReportRow{Title: title, Currency: rowCurrency}
		agg.Rows[key] = row
	}
	totals, ok := agg.Totals[rowCurrency.ID]
	if !ok {
		totals = &models.ReportRow{Currency: rowCurrency}
		agg.Totals[rowCurrency.ID] = totals
	}

	// The spent/earned split follows the sign of the journal's own amount,
	// while the accumulated value is the (possibly converted) amount.
	sign := money.Compare(journal.Amount, decimal.Zero)
	for _, r := range []*models.ReportRow{row, totals} {
		r.Sum = money.Add(r.Sum, amount)
		if sign < 0 {
			r.Spent = money.Add(r.Spent, amount)
		}
		if sign > 0 {
			r.Earned = money.Add(r.Earned, amount)
		}
	}
	return nil
}

// primaryAmount resolves a journal's value in the primary currency. A
// precomputed primary amount wins when present; otherwise the raw amount is
// used when the journal's currency (or its foreign currency) already is the
// primary one; otherwise the amount is converted at the journal's date. When
// no rate exists the raw amount stands in 1:1 and the discrepancy is logged.
func (a *Aggregator) primaryAmount(ctx context.Context, agg *Aggregation, journal *models.Journal) (decimal.Decimal, error) {
	if journal.PrimaryAmount != nil {
		return *journal.PrimaryAmount, nil
	}
	if journal.Currency.ID == agg.primary.ID {
		return journal.Amount, nil
	}
	if journal.ForeignCurrency != nil && journal.ForeignCurrency.ID == agg.primary.ID && journal.ForeignAmount != nil {
		return *journal.ForeignAmount, nil
	}

	converted, err := agg.converter.Convert(ctx, journal.Currency, agg.primary, journal.Date, journal.Amount)
	if err != nil {
		var unavailable *apperrors.ErrRateUnavailable
		if errors.As(err, &unavailable) {
			a.logger.Warn("no exchange rate, using unconverted amount",
				zap.String("journal_id", journal.ID),
				zap.String("from", journal.Currency.Code),
				zap.String("to", agg.primary.Code),
				zap.Time("date", journal.Date))
			return journal.Amount, nil
		}
		return decimal.Zero, err
	}
	return converted, nil
}

// PrimaryAmount resolves a journal's value in the run's primary currency,
// sharing the run's converter cache. Only valid for primary-mode runs.
func (a *Aggregator) PrimaryAmount(ctx context.Context, agg *Aggregation, journal *models.Journal) (decimal.Decimal, error) {
	return a.primaryAmount(ctx, agg, journal)
}

// OrderedTotals returns the per-currency totals sorted by ascending currency
// id, with the primary currency's row first whenever one accumulated. The
// primary-first rule applies in native mode too.
func (agg *Aggregation) OrderedTotals() []*models.ReportRow {
	ids := make([]int, 0, len(agg.Totals))
	for id := range agg.Totals {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]*models.ReportRow, 0, len(ids))
	primary, hasPrimary := agg.Totals[agg.primary.ID]
	if hasPrimary {
		rows = append(rows, primary)
	}
	for _, id := range ids {
		if hasPrimary && id == agg.primary.ID {
			continue
		}
		rows = append(rows, agg.Totals[id])
	}
	return rows
}

// SortedRows returns the aggregated rows in display order.
func (agg *Aggregation) SortedRows() []*models.ReportRow {
	rows := make([]*models.ReportRow, 0, len(agg.Rows))
	keys := make([]string, 0, len(agg.Rows))
	for key := range agg.Rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, agg.Rows[key])
	}
	SortRows(rows)
	return rows
}
