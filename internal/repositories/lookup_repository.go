package repositories

import (
	"context"
	"fmt"

	"github.com/tdhoang/centavo/internal/db"
	"github.com/tdhoang/centavo/internal/models"
)

// LookupRepository fetches single classification entities by id, for the
// endpoints that chart one budget, category or tag.
type LookupRepository interface {
	GetBudget(ctx context.Context, id int) (*models.Budget, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	GetTag(ctx context.Context, id int) (*models.Tag, error)
}

type lookupRepository struct {
	db *db.DB
}

func NewLookupRepository(database *db.DB) LookupRepository {
	return &lookupRepository{db: database}
}

func (r *lookupRepository) GetBudget(ctx context.Context, id int) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.WithContext(ctx).First(&budget, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get budget %d: %w", id, err)
	}
	return &budget, nil
}

func (r *lookupRepository) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

func (r *lookupRepository) GetTag(ctx context.Context, id int) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get tag %d: %w", id, err)
	}
	return &tag, nil
}
