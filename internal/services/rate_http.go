package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/repositories"
)

// exchangeRateResponse is the upstream API response shape.
type exchangeRateResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// HTTPRateSource layers a live FX API over the stored rates: the database is
// consulted first, and rates fetched from the API are written back so the
// next report run finds them locally. Only current rates are fetched; a
// historical date with no stored rate stays unavailable.
type HTTPRateSource struct {
	baseURL    string
	httpClient *http.Client
	store      repositories.RateRepository
	logger     *zap.Logger
}

// NewHTTPRateSource creates a rate source backed by exchangerate-api.com. An
// empty apiKey selects the keyless v4 endpoint.
func NewHTTPRateSource(apiKey string, store repositories.RateRepository, logger *zap.Logger) *HTTPRateSource {
	baseURL := "https://api.exchangerate-api.com/v4/latest"
	if apiKey != "" {
		baseURL = "https://v6.exchangerate-api.com/v6/" + apiKey + "/latest"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPRateSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		store:  store,
		logger: logger,
	}
}

// GetRate resolves a rate from the store, falling back to the API for
// same-day lookups.
func (s *HTTPRateSource) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	rate, err := s.store.GetRate(ctx, from, to, date)
	if err == nil {
		return rate, nil
	}

	// Stored rates are authoritative for the past.
	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return decimal.Zero, err
	}

	rate, err = s.fetchRate(ctx, from, to)
	if err != nil {
		s.logger.Warn("FX API lookup failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return decimal.Zero, &apperrors.ErrRateUnavailable{From: from, To: to, Date: date}
	}

	stored := &models.FXRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Date:         date,
		Source:       "exchangerate-api.com",
	}
	if err := s.store.StoreRate(ctx, stored); err != nil {
		s.logger.Warn("failed to store fetched rate", zap.Error(err))
	}
	return rate, nil
}

func (s *HTTPRateSource) fetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("FX API returned status %d", resp.StatusCode)
	}

	var parsed exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := parsed.ConversionRates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s rate in %s response", to, from)
	}
	return rate, nil
}
