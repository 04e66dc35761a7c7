package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
)

// memoryRateStore is an in-memory RateRepository for tests.
type memoryRateStore struct {
	rates  map[string]decimal.Decimal
	stored []*models.FXRate
}

func newMemoryRateStore() *memoryRateStore {
	return &memoryRateStore{rates: make(map[string]decimal.Decimal)}
}

func (s *memoryRateStore) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	if rate, ok := s.rates[from+":"+to]; ok {
		return rate, nil
	}
	return decimal.Zero, &apperrors.ErrRateUnavailable{From: from, To: to, Date: date}
}

func (s *memoryRateStore) StoreRate(ctx context.Context, rate *models.FXRate) error {
	s.rates[rate.FromCurrency+":"+rate.ToCurrency] = rate.Rate
	s.stored = append(s.stored, rate)
	return nil
}

func TestHTTPRateSourcePrefersStoredRates(t *testing.T) {
	store := newMemoryRateStore()
	store.rates["EUR:USD"] = decimal.RequireFromString("1.08")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called when the store has the rate")
	}))
	defer server.Close()

	source := NewHTTPRateSource("", store, nil)
	source.baseURL = server.URL

	rate, err := source.GetRate(context.Background(), "eur", "usd", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "1.08", rate.String())
}

func TestHTTPRateSourceFetchesAndStores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/EUR", r.URL.Path)
		fmt.Fprint(w, `{"result":"success","base_code":"EUR","conversion_rates":{"USD":1.0923}}`)
	}))
	defer server.Close()

	store := newMemoryRateStore()
	source := NewHTTPRateSource("", store, nil)
	source.baseURL = server.URL

	rate, err := source.GetRate(context.Background(), "EUR", "USD", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "1.0923", rate.String())

	require.Len(t, store.stored, 1)
	assert.Equal(t, "EUR", store.stored[0].FromCurrency)
	assert.Equal(t, "exchangerate-api.com", store.stored[0].Source)
}

func TestHTTPRateSourceSkipsAPIForHistoricalDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called for historical dates")
	}))
	defer server.Close()

	store := newMemoryRateStore()
	source := NewHTTPRateSource("", store, nil)
	source.baseURL = server.URL

	_, err := source.GetRate(context.Background(), "EUR", "USD", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}

func TestHTTPRateSourceAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	store := newMemoryRateStore()
	source := NewHTTPRateSource("", store, nil)
	source.baseURL = server.URL

	_, err := source.GetRate(context.Background(), "EUR", "USD", time.Now())
	require.Error(t, err)
	assert.ErrorAs(t, err, new(*apperrors.ErrRateUnavailable))
}
