package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PieSlice is one slice of a pie chart response.
type PieSlice struct {
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencySymbol string          `json:"currency_symbol"`
	CurrencyCode   string          `json:"currency_code"`
}

// ChartSeries is one bar data set of a time-series chart, one per currency
// (and per spent/earned split).
type ChartSeries struct {
	Label          string   `json:"label"`
	Type           string   `json:"type"`
	CurrencySymbol string   `json:"currency_symbol"`
	CurrencyCode   string   `json:"currency_code"`
	CurrencyID     int      `json:"currency_id"`
	Entries        *Entries `json:"entries"`
}

// Entries is an insertion-ordered mapping from period label to accumulated
// amount. It serializes as a JSON object whose keys keep their insertion
// order, so formatting the same series twice yields identical bytes.
type Entries struct {
	labels  []string
	amounts map[string]decimal.Decimal
}

func NewEntries() *Entries {
	return &Entries{amounts: make(map[string]decimal.Decimal)}
}

// Seed registers a label with a zero amount if it is not present yet.
func (e *Entries) Seed(label string) {
	if _, ok := e.amounts[label]; ok {
		return
	}
	e.labels = append(e.labels, label)
	e.amounts[label] = decimal.Zero
}

// Add accumulates an amount under a label, registering the label when needed.
func (e *Entries) Add(label string, amount decimal.Decimal) {
	e.Seed(label)
	e.amounts[label] = e.amounts[label].Add(amount)
}

// Amount returns the accumulated amount for a label.
func (e *Entries) Amount(label string) decimal.Decimal {
	return e.amounts[label]
}

// Labels returns the labels in insertion order.
func (e *Entries) Labels() []string {
	out := make([]string, len(e.labels))
	copy(out, e.labels)
	return out
}

// Len returns the number of labels.
func (e *Entries) Len() int {
	return len(e.labels)
}

func (e *Entries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range e.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.amounts[label])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
