package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/periods"
)

func TestPieChartNativeSuffixesSymbol(t *testing.T) {
	usd := testJournal("a", testUSD, "-30.00", 1)
	usd.CategoryName = "Travel"
	eur := testJournal("b", testEUR, "-80.00", 1)
	eur.CategoryName = "Travel"

	groups := []*models.CurrencyGroup{
		flatGroup(testUSD, usd),
		flatGroup(testEUR, eur),
	}
	agg, err := NewAggregator(NewMockRateSource(), nil).
		Aggregate(context.Background(), groups, titleByCategory, Options{Mode: ModeNative})
	require.NoError(t, err)

	slices := PieChart(agg, ModeNative)
	require.Len(t, slices, 2)
	assert.Equal(t, "Travel (€)", slices[0].Title, "bigger magnitude first")
	assert.Equal(t, "80", slices[0].Amount.String(), "pie amounts are magnitudes")
	assert.Equal(t, "Travel ($)", slices[1].Title)
	assert.Equal(t, "30", slices[1].Amount.String())
}

func TestPieChartPrimaryKeepsPlainTitles(t *testing.T) {
	journal := testJournal("a", testEUR, "-10.00", 1)
	journal.CategoryName = "Travel"

	agg, err := NewAggregator(NewMockRateSource(), nil).
		Aggregate(context.Background(), []*models.CurrencyGroup{flatGroup(testEUR, journal)}, titleByCategory, Options{Mode: ModePrimary, Primary: testUSD})
	require.NoError(t, err)

	slices := PieChart(agg, ModePrimary)
	require.Len(t, slices, 1)
	assert.Equal(t, "Travel", slices[0].Title)
	assert.Equal(t, "USD", slices[0].CurrencyCode)
}

func TestSeriesBuilderSeedsAllPeriods(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC)

	builder, err := NewSeriesBuilder(start, end, periods.Monthly)
	require.NoError(t, err)

	builder.Add("Spent", testUSD, time.Date(2023, time.February, 14, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("-25.50"))

	series := builder.Series()
	require.Len(t, series, 1)
	s := series[0]
	assert.Equal(t, "bar", s.Type)
	assert.Equal(t, []string{"Jan 2023", "Feb 2023", "Mar 2023"}, s.Entries.Labels())
	assert.True(t, s.Entries.Amount("Jan 2023").IsZero())
	assert.Equal(t, "25.5", s.Entries.Amount("Feb 2023").String())
}

func TestSeriesBuilderDropsOutOfRangeDates(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)

	builder, err := NewSeriesBuilder(start, end, periods.Monthly)
	require.NoError(t, err)

	builder.Add("Spent", testUSD, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100))

	series := builder.Series()
	require.Len(t, series, 1)
	assert.True(t, series[0].Entries.Amount("Jan 2023").IsZero())
}

func TestSeriesMarshalIsOrderedAndIdempotent(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC)

	builder, err := NewSeriesBuilder(start, end, periods.Monthly)
	require.NoError(t, err)
	builder.Add("Spent", testUSD, start, decimal.RequireFromString("-9.99"))

	series := builder.Series()
	first, err := json.Marshal(series)
	require.NoError(t, err)
	second, err := json.Marshal(series)
	require.NoError(t, err)

	assert.Equal(t, first, second, "rendering the same series twice yields identical bytes")
	assert.Contains(t, string(first), `"entries":{"Jan 2023":"9.99","Feb 2023":"0","Mar 2023":"0"}`)
}
