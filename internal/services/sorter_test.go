package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tdhoang/centavo/internal/models"
)

func sortedTitles(rows []*models.ReportRow) []string {
	titles := make([]string, len(rows))
	for i, row := range rows {
		titles[i] = row.Title
	}
	return titles
}

func TestSortRowsPositiveFirstThenMagnitude(t *testing.T) {
	row := func(title, sum string) *models.ReportRow {
		return &models.ReportRow{Title: title, Sum: decimal.RequireFromString(sum)}
	}

	rows := []*models.ReportRow{
		row("small expense", "-5.00"),
		row("big income", "900.00"),
		row("big expense", "-300.00"),
		row("zero", "0"),
		row("small income", "1.00"),
	}
	SortRows(rows)

	assert.Equal(t, []string{"big income", "small income", "big expense", "small expense", "zero"}, sortedTitles(rows))
}

func TestSortRowsStableOnTies(t *testing.T) {
	rows := []*models.ReportRow{
		{Title: "first", Sum: decimal.RequireFromString("-10.00")},
		{Title: "second", Sum: decimal.RequireFromString("-10.00")},
		{Title: "third", Sum: decimal.RequireFromString("-10.00")},
	}
	SortRows(rows)

	assert.Equal(t, []string{"first", "second", "third"}, sortedTitles(rows))
}
