package repositories

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tdhoang/centavo/internal/db"
	"github.com/tdhoang/centavo/internal/models"
)

type currencyRepository struct {
	db *db.DB
}

// NewCurrencyRepository creates a new currency repository
func NewCurrencyRepository(database *db.DB) CurrencyRepository {
	return &currencyRepository{db: database}
}

func (r *currencyRepository) List(ctx context.Context) ([]*models.Currency, error) {
	var currencies []*models.Currency
	if err := r.db.WithContext(ctx).Order("id").Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *currencyRepository) GetByID(ctx context.Context, id int) (*models.Currency, error) {
	var currency models.Currency
	if err := r.db.WithContext(ctx).First(&currency, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("currency not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *currencyRepository) GetByCode(ctx context.Context, code string) (*models.Currency, error) {
	var currency models.Currency
	if err := r.db.WithContext(ctx).First(&currency, "code = ?", strings.ToUpper(code)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("currency not found: %s", code)
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

// GetPrimaryCurrency resolves the currency all reports consolidate into. The
// preference stores the currency code.
func (r *currencyRepository) GetPrimaryCurrency(ctx context.Context) (*models.Currency, error) {
	var pref models.Preference
	if err := r.db.WithContext(ctx).First(&pref, "name = ?", models.PrefPrimaryCurrency).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("primary currency preference not set")
		}
		return nil, fmt.Errorf("failed to read primary currency preference: %w", err)
	}
	return r.GetByCode(ctx, pref.Value)
}

func (r *currencyRepository) ConvertToPrimary(ctx context.Context) (bool, error) {
	var pref models.Preference
	if err := r.db.WithContext(ctx).First(&pref, "name = ?", models.PrefConvertToPrimary).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to read convert preference: %w", err)
	}
	return pref.Value == "true" || pref.Value == "1", nil
}
