package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tdhoang/centavo/internal/errors"
)

func TestConverterIdentitySkipsLookup(t *testing.T) {
	source := &countingRateSource{inner: NewMockRateSource()}
	conv := NewConverter(source)

	amount := decimal.RequireFromString("123.456")
	got, err := conv.Convert(context.Background(), testUSD, testUSD, testDate(1), amount)
	require.NoError(t, err)

	assert.True(t, got.Equal(amount), "identity conversion must not round")
	assert.Equal(t, 0, source.calls)
}

func TestConverterRoundsToTargetPlaces(t *testing.T) {
	source := NewMockRateSource()
	source.SetRate("EUR", "USD", decimal.RequireFromString("1.1111"))
	conv := NewConverter(source)

	// 10.00 * 1.1111 = 11.111, rounds to 11.11.
	got, err := conv.Convert(context.Background(), testEUR, testUSD, testDate(1), decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.Equal(t, "11.11", got.String())

	// VND carries zero decimal places.
	got, err = conv.Convert(context.Background(), testUSD, testVND, testDate(1), decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "36000", got.String())
}

func TestConverterCachesPerPairAndDate(t *testing.T) {
	source := &countingRateSource{inner: NewMockRateSource()}
	conv := NewConverter(source)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := conv.Convert(ctx, testEUR, testUSD, testDate(10), decimal.NewFromInt(int64(i)))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, source.calls)

	_, err := conv.Convert(ctx, testEUR, testUSD, testDate(11), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls, "a different date is a different cache entry")

	_, err = conv.Convert(ctx, testUSD, testEUR, testDate(10), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, 3, source.calls, "the inverse pair is a different cache entry")
}

func TestConverterRateUnavailable(t *testing.T) {
	conv := NewConverter(NewMockRateSource())

	chf := testUSD
	chf.ID = 9
	chf.Code = "CHF"
	_, err := conv.Convert(context.Background(), chf, testVND, testDate(1), decimal.NewFromInt(1))
	require.Error(t, err)

	var unavailable *apperrors.ErrRateUnavailable
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "CHF", unavailable.From)
	assert.Equal(t, "VND", unavailable.To)
}
