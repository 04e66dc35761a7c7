package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is immutable reference data shared by many journals.
type Currency struct {
	ID            int    `json:"id" gorm:"primaryKey"`
	Code          string `json:"code" gorm:"uniqueIndex;size:12"`
	Symbol        string `json:"symbol" gorm:"size:12"`
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimal_places"`
}

func (Currency) TableName() string { return "currencies" }

// Validate validates currency reference data before it is stored.
func (c *Currency) Validate() error {
	if c.Code == "" {
		return errors.New("code is required")
	}
	if c.Symbol == "" {
		return errors.New("symbol is required")
	}
	if c.DecimalPlaces < 0 {
		return errors.New("decimal_places must not be negative")
	}
	return nil
}

// Account is one asset or expense/revenue account journals point at.
type Account struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"index"`
	Type string `json:"type" gorm:"size:32"`
}

// Budget groups withdrawals for planning purposes.
type Budget struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"index"`
}

// Category classifies journals independently of budgets.
type Category struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"index"`
}

// Tag is a free-form label attached to journals.
type Tag struct {
	ID   int    `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
}

// FXRate is one stored exchange rate, effective on a date.
type FXRate struct {
	ID           int             `json:"id" gorm:"primaryKey"`
	FromCurrency string          `json:"from_currency" gorm:"index:idx_fx_pair_date;size:12"`
	ToCurrency   string          `json:"to_currency" gorm:"index:idx_fx_pair_date;size:12"`
	Rate         decimal.Decimal `json:"rate" gorm:"type:decimal(30,12)"`
	Date         time.Time       `json:"date" gorm:"index:idx_fx_pair_date"`
	Source       string          `json:"source" gorm:"size:64"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (FXRate) TableName() string { return "fx_rates" }

// Validate validates the FX rate data.
func (fx *FXRate) Validate() error {
	if fx.FromCurrency == "" {
		return errors.New("from_currency is required")
	}
	if fx.ToCurrency == "" {
		return errors.New("to_currency is required")
	}
	if fx.FromCurrency == fx.ToCurrency {
		return errors.New("from_currency and to_currency must be different")
	}
	if fx.Rate.IsZero() || fx.Rate.IsNegative() {
		return errors.New("rate must be positive")
	}
	if fx.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// Preference is a user-level setting, e.g. the primary currency code and
// whether reports convert into it.
type Preference struct {
	ID    int    `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex"`
	Value string `json:"value"`
}

// Preference names used by the reporting layer.
const (
	PrefPrimaryCurrency  = "primary_currency"
	PrefConvertToPrimary = "convert_to_primary"
)
