package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tdhoang/centavo/internal/db"
	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
)

type rateRepository struct {
	db *db.DB
}

// NewRateRepository creates a new FX rate repository
func NewRateRepository(database *db.DB) RateRepository {
	return &rateRepository{db: database}
}

// GetRate returns the most recent stored rate for the pair effective on or
// before the requested date.
func (r *rateRepository) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	var rate models.FXRate
	err := r.db.WithContext(ctx).
		Where("from_currency = ? AND to_currency = ? AND date <= ?", strings.ToUpper(from), strings.ToUpper(to), date).
		Order("date DESC, created_at DESC").
		First(&rate).Error
	if err == gorm.ErrRecordNotFound {
		return decimal.Zero, &apperrors.ErrRateUnavailable{From: strings.ToUpper(from), To: strings.ToUpper(to), Date: date}
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate: %w", err)
	}
	return rate.Rate, nil
}

func (r *rateRepository) StoreRate(ctx context.Context, rate *models.FXRate) error {
	if err := rate.Validate(); err != nil {
		return &apperrors.ErrValidation{Field: "rate", Message: err.Error()}
	}
	rate.FromCurrency = strings.ToUpper(rate.FromCurrency)
	rate.ToCurrency = strings.ToUpper(rate.ToCurrency)
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return fmt.Errorf("failed to store rate: %w", err)
	}
	return nil
}
