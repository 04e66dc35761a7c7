// Package periods turns a date range and a reporting granularity into the
// ordered sequence of periods a time-series chart spans.
package periods

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/tdhoang/centavo/internal/errors"
)

// Granularity is the reporting frequency used to cut a date range into chart
// periods.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
	Quarterly
	HalfYearly
	Yearly
	// Custom treats the whole range as a single period.
	Custom
)

func (g Granularity) String() string {
	switch g {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case HalfYearly:
		return "half-year"
	case Yearly:
		return "yearly"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// ParseGranularity accepts the frequency aliases used across report URLs.
func ParseGranularity(value string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1d", "daily", "day":
		return Daily, nil
	case "1w", "week", "weekly":
		return Weekly, nil
	case "1m", "month", "monthly":
		return Monthly, nil
	case "3m", "quarter", "quarterly":
		return Quarterly, nil
	case "6m", "half-year", "half_year":
		return HalfYearly, nil
	case "1y", "year", "yearly":
		return Yearly, nil
	case "custom":
		return Custom, nil
	}
	return 0, &apperrors.ErrInvalidGranularity{Value: value}
}

// Preferred picks the chart granularity for a date range: daily up to about
// a month, monthly up to a year, yearly beyond that.
func Preferred(start, end time.Time) Granularity {
	days := int(startOfDay(end).Sub(startOfDay(start)).Hours() / 24)
	switch {
	case days <= 31:
		return Daily
	case days <= 366:
		return Monthly
	default:
		return Yearly
	}
}

// Span is one reporting period: its calendar bounds and its display label.
type Span struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether a date falls inside the span, bounds included.
func (s Span) Contains(date time.Time) bool {
	day := startOfDay(date)
	return !day.Before(s.Start) && !day.After(s.End)
}

// Build produces one span per period between start and end, in chronological
// order. The caller's start and end are taken by value and never modified.
// Each iteration advances the cursor past the current period's end, so the
// loop always terminates.
func Build(start, end time.Time, g Granularity) ([]Span, error) {
	if end.Before(start) {
		return nil, &apperrors.ErrValidation{Field: "end", Message: "must not be before start"}
	}

	last := startOfDay(end)
	cursor := startOfDay(start)

	var spans []Span
	for !cursor.After(last) {
		periodEnd, err := endOfPeriod(cursor, last, g)
		if err != nil {
			return nil, err
		}
		if periodEnd.After(last) {
			periodEnd = last
		}
		spans = append(spans, Span{
			Start: cursor,
			End:   periodEnd,
			Label: label(cursor, periodEnd, g),
		})
		cursor = periodEnd.AddDate(0, 0, 1)
	}
	return spans, nil
}

// endOfPeriod returns the last day of the period containing cursor. Periods
// other than custom align to calendar boundaries.
func endOfPeriod(cursor, rangeEnd time.Time, g Granularity) (time.Time, error) {
	y, m, _ := cursor.Date()
	switch g {
	case Daily:
		return cursor, nil
	case Weekly:
		// ISO weeks run Monday through Sunday; a mid-week cursor ends at
		// the coming Sunday so labels match the weeks they cover.
		iso := int(cursor.Weekday())
		if iso == 0 {
			iso = 7
		}
		return cursor.AddDate(0, 0, 7-iso), nil
	case Monthly:
		return time.Date(y, m+1, 0, 0, 0, 0, 0, cursor.Location()), nil
	case Quarterly:
		qEnd := time.Month((int(m)-1)/3*3 + 4)
		return time.Date(y, qEnd, 0, 0, 0, 0, 0, cursor.Location()), nil
	case HalfYearly:
		if m <= time.June {
			return time.Date(y, time.June, 30, 0, 0, 0, 0, cursor.Location()), nil
		}
		return time.Date(y, time.December, 31, 0, 0, 0, 0, cursor.Location()), nil
	case Yearly:
		return time.Date(y, time.December, 31, 0, 0, 0, 0, cursor.Location()), nil
	case Custom:
		return rangeEnd, nil
	}
	return time.Time{}, &apperrors.ErrInvalidGranularity{Value: g.String()}
}

func label(start, end time.Time, g Granularity) string {
	switch g {
	case Daily:
		return start.Format("2006-01-02")
	case Weekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("Week %d, %d", week, year)
	case Monthly:
		return start.Format("Jan 2006")
	case Quarterly:
		return fmt.Sprintf("Q%d %d", (int(start.Month())-1)/3+1, start.Year())
	case HalfYearly:
		half := 1
		if start.Month() > time.June {
			half = 2
		}
		return fmt.Sprintf("H%d %d", half, start.Year())
	case Yearly:
		return start.Format("2006")
	}
	return start.Format("2006-01-02") + " - " + end.Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
