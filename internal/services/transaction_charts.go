package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/money"
	"github.com/tdhoang/centavo/internal/repositories"
)

type transactionChartService struct {
	chartBase
	rates RateSource
}

// NewTransactionChartService creates the transaction overview chart service.
func NewTransactionChartService(ops repositories.OperationsRepository, currencies repositories.CurrencyRepository, rates RateSource, labels Labels, logger *zap.Logger) TransactionChartService {
	return &transactionChartService{
		chartBase: newChartBase(ops, currencies, rates, labels, logger),
		rates:     rates,
	}
}

// Budgets groups all withdrawals in the range by budget. Budgets only apply
// to withdrawals, so the type is fixed.
func (s *transactionChartService) Budgets(ctx context.Context, start, end time.Time) ([]*models.PieSlice, error) {
	return s.overview(ctx, models.TypeWithdrawal, start, end, s.budgetTitle)
}

// Categories groups all journals of one type in the range by category.
func (s *transactionChartService) Categories(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error) {
	t, err := parseTransactionType(transactionType)
	if err != nil {
		return nil, err
	}
	return s.overview(ctx, t, start, end, s.categoryTitle)
}

// SourceAccounts groups all journals of one type in the range by source
// account.
func (s *transactionChartService) SourceAccounts(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error) {
	t, err := parseTransactionType(transactionType)
	if err != nil {
		return nil, err
	}
	return s.overview(ctx, t, start, end, s.sourceTitle)
}

// DestinationAccounts groups all journals of one type in the range by
// destination account.
func (s *transactionChartService) DestinationAccounts(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error) {
	t, err := parseTransactionType(transactionType)
	if err != nil {
		return nil, err
	}
	return s.overview(ctx, t, start, end, s.destinationTitle)
}

func parseTransactionType(value string) (string, error) {
	switch value {
	case "withdrawal":
		return models.TypeWithdrawal, nil
	case "deposit":
		return models.TypeDeposit, nil
	case "transfer", "transfers":
		return models.TypeTransfer, nil
	}
	return "", &apperrors.ErrValidation{Field: "type", Message: fmt.Sprintf("unknown transaction type %q", value)}
}

func (s *transactionChartService) overview(ctx context.Context, transactionType string, start, end time.Time, title TitleFunc) ([]*models.PieSlice, error) {
	opts, err := s.options(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.ops.ListByType(ctx, start, end, transactionType)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	if opts.Mode == ModePrimary {
		return s.primaryOverview(ctx, groups, title, opts.Primary)
	}
	return nativeOverview(groups, title), nil
}

// nativeOverview keeps each currency's amounts apart by suffixing the slice
// title with the currency symbol. Slices come out in first-seen order.
func nativeOverview(groups []*models.CurrencyGroup, title TitleFunc) []*models.PieSlice {
	var order []string
	buckets := make(map[string]*models.PieSlice)

	for _, group := range groups {
		for _, journal := range group.Journals {
			key := fmt.Sprintf("%s (%s)", title(journal, nil), group.Currency.Symbol)
			slice, ok := buckets[key]
			if !ok {
				slice = &models.PieSlice{
					Title:          key,
					CurrencySymbol: group.Currency.Symbol,
					CurrencyCode:   group.Currency.Code,
				}
				buckets[key] = slice
				order = append(order, key)
			}
			slice.Amount = money.Add(slice.Amount, money.Positive(journal.Amount))
		}
	}

	slices := make([]*models.PieSlice, 0, len(order))
	for _, key := range order {
		slices = append(slices, buckets[key])
	}
	return slices
}

// primaryOverview first buckets amounts per title and per currency, then
// converts each bucket once at today's rate. Bucketing before converting
// keeps the rate lookups to one per currency pair rather than one per
// journal.
func (s *transactionChartService) primaryOverview(ctx context.Context, groups []*models.CurrencyGroup, title TitleFunc, primary models.Currency) ([]*models.PieSlice, error) {
	type bucket struct {
		title      string
		currencies []models.Currency
		amounts    map[int]decimal.Decimal
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, group := range groups {
		for _, journal := range group.Journals {
			name := title(journal, nil)
			b, ok := buckets[name]
			if !ok {
				b = &bucket{title: name, amounts: make(map[int]decimal.Decimal)}
				buckets[name] = b
				order = append(order, name)
			}
			if _, ok := b.amounts[group.Currency.ID]; !ok {
				b.currencies = append(b.currencies, group.Currency)
			}
			b.amounts[group.Currency.ID] = money.Add(b.amounts[group.Currency.ID], money.Positive(journal.Amount))
		}
	}

	converter := NewConverter(s.rates)
	now := time.Now()

	slices := make([]*models.PieSlice, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		sum := decimal.Zero
		for _, currency := range b.currencies {
			amount := b.amounts[currency.ID]
			converted, err := converter.Convert(ctx, currency, primary, now, amount)
			if err != nil {
				var unavailable *apperrors.ErrRateUnavailable
				if errors.As(err, &unavailable) {
					s.logger.Warn("no exchange rate, using unconverted amount",
						zap.String("title", b.title),
						zap.String("from", currency.Code),
						zap.String("to", primary.Code))
					converted = amount
				} else {
					return nil, err
				}
			}
			sum = money.Add(sum, converted)
		}
		slices = append(slices, &models.PieSlice{
			Title:          b.title,
			Amount:         sum,
			CurrencySymbol: primary.Symbol,
			CurrencyCode:   primary.Code,
		})
	}
	return slices, nil
}
