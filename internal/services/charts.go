package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/money"
	"github.com/tdhoang/centavo/internal/periods"
)

// PieChart renders an aggregation as pie slices in display order. In native
// mode the currency symbol is appended to each title so same-named rows in
// different currencies stay distinguishable; amounts are always emitted as
// magnitudes.
func PieChart(agg *Aggregation, mode Mode) []*models.PieSlice {
	rows := agg.SortedRows()
	slices := make([]*models.PieSlice, 0, len(rows))
	for _, row := range rows {
		title := row.Title
		if mode == ModeNative {
			title = fmt.Sprintf("%s (%s)", row.Title, row.Currency.Symbol)
		}
		slices = append(slices, &models.PieSlice{
			Title:          title,
			Amount:         money.Positive(row.Sum),
			CurrencySymbol: row.Currency.Symbol,
			CurrencyCode:   row.Currency.Code,
		})
	}
	return slices
}

// seriesKey identifies one bar series of a main chart.
type seriesKey struct {
	label      string
	currencyID int
}

// SeriesBuilder assembles time-bucketed bar series for main charts. Every
// series is seeded with the full list of period labels so sparse data still
// produces aligned, zero-filled charts.
type SeriesBuilder struct {
	spans  []periods.Span
	order  []seriesKey
	series map[seriesKey]*models.ChartSeries
}

// NewSeriesBuilder creates a builder over the report range at the given
// granularity.
func NewSeriesBuilder(start, end time.Time, g periods.Granularity) (*SeriesBuilder, error) {
	spans, err := periods.Build(start, end, g)
	if err != nil {
		return nil, err
	}
	return &SeriesBuilder{
		spans:  spans,
		series: make(map[seriesKey]*models.ChartSeries),
	}, nil
}

// Spans exposes the builder's period spans.
func (b *SeriesBuilder) Spans() []periods.Span {
	return b.spans
}

// Add accumulates an amount, as a magnitude, into the series named label for
// the period containing date. Amounts outside the report range are dropped.
func (b *SeriesBuilder) Add(label string, currency models.Currency, date time.Time, amount decimal.Decimal) {
	key := seriesKey{label: label, currencyID: currency.ID}
	s, ok := b.series[key]
	if !ok {
		s = &models.ChartSeries{
			Label:          label,
			Type:           "bar",
			CurrencySymbol: currency.Symbol,
			CurrencyCode:   currency.Code,
			CurrencyID:     currency.ID,
			Entries:        models.NewEntries(),
		}
		for _, span := range b.spans {
			s.Entries.Seed(span.Label)
		}
		b.order = append(b.order, key)
		b.series[key] = s
	}
	for _, span := range b.spans {
		if span.Contains(date) {
			s.Entries.Add(span.Label, money.Positive(amount))
			return
		}
	}
}

// Series returns the built series in first-seen order.
func (b *SeriesBuilder) Series() []*models.ChartSeries {
	out := make([]*models.ChartSeries, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.series[key])
	}
	return out
}
