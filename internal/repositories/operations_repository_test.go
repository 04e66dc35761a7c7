package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tdhoang/centavo/internal/errors"
	"github.com/tdhoang/centavo/internal/models"
)

func TestOperationsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := setupTestDB(t)
	defer tdb.cleanup(t)
	seedFixtures(t, tdb.database)

	repo := NewOperationsRepository(tdb.database)
	ctx := context.Background()

	t.Run("expenses are negated and grouped by currency", func(t *testing.T) {
		groups, err := repo.ListExpenses(ctx, date(1), date(30), []int{1}, DimensionNone, nil)
		require.NoError(t, err)

		require.Len(t, groups, 2)
		require.Len(t, groups[0].Journals, 1)
		assert.Equal(t, "USD", groups[0].Currency.Code, "first journal's currency comes first")
		assert.Equal(t, "-50", groups[0].Journals[0].Amount.String())
		assert.Equal(t, "Checking", groups[0].Journals[0].SourceAccountName)
		assert.Equal(t, "Supermarket", groups[0].Journals[0].DestinationAccountName)
		assert.Equal(t, "Groceries", groups[0].Journals[0].CategoryName)

		require.Len(t, groups[1].Journals, 1)
		assert.Equal(t, "EUR", groups[1].Currency.Code)
		assert.Equal(t, "-800", groups[1].Journals[0].Amount.String())
		assert.Equal(t, "Bills", groups[1].Journals[0].BudgetName)
	})

	t.Run("income stays positive", func(t *testing.T) {
		groups, err := repo.ListIncome(ctx, date(1), date(30), []int{1}, DimensionNone, nil)
		require.NoError(t, err)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Journals, 1)
		assert.Equal(t, "2000", groups[0].Journals[0].Amount.String())
		assert.Equal(t, "Employer", groups[0].Journals[0].SourceAccountName)
	})

	t.Run("transfer directions mirror each other", func(t *testing.T) {
		out, err := repo.ListTransferredOut(ctx, date(1), date(30), []int{1}, DimensionNone, nil)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "-300", out[0].Journals[0].Amount.String())

		in, err := repo.ListTransferredIn(ctx, date(1), date(30), []int{2}, DimensionNone, nil)
		require.NoError(t, err)
		require.Len(t, in, 1)
		assert.Equal(t, "300", in[0].Journals[0].Amount.String())
	})

	t.Run("date range bounds the listing", func(t *testing.T) {
		groups, err := repo.ListExpenses(ctx, date(1), date(7), []int{1}, DimensionNone, nil)
		require.NoError(t, err)

		require.Len(t, groups, 1)
		assert.Equal(t, "USD", groups[0].Currency.Code)
	})

	t.Run("type listing is unscoped and keeps stored signs", func(t *testing.T) {
		groups, err := repo.ListByType(ctx, date(1), date(30), models.TypeWithdrawal)
		require.NoError(t, err)

		require.Len(t, groups, 2)
		assert.Equal(t, "50", groups[0].Journals[0].Amount.String())
		assert.Equal(t, "800", groups[1].Journals[0].Amount.String())

		deposits, err := repo.ListByType(ctx, date(1), date(30), models.TypeDeposit)
		require.NoError(t, err)
		require.Len(t, deposits, 1)
		assert.Equal(t, "2000", deposits[0].Journals[0].Amount.String())
	})

	t.Run("account filter excludes other accounts", func(t *testing.T) {
		groups, err := repo.ListExpenses(ctx, date(1), date(30), []int{2}, DimensionNone, nil)
		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	t.Run("category dimension buckets journals", func(t *testing.T) {
		groups, err := repo.ListExpenses(ctx, date(1), date(30), []int{1}, DimensionCategory, nil)
		require.NoError(t, err)

		require.Len(t, groups, 2)
		require.Len(t, groups[0].Groups, 1)
		assert.Equal(t, "Groceries", groups[0].Groups[0].Name)
		assert.Empty(t, groups[0].Journals, "dimension listings carry no flat journals")
		require.Len(t, groups[1].Groups, 1)
		assert.Equal(t, "Rent", groups[1].Groups[0].Name)
	})

	t.Run("dimension id filter narrows the listing", func(t *testing.T) {
		groups, err := repo.ListExpenses(ctx, date(1), date(30), []int{1}, DimensionCategory, []int{2})
		require.NoError(t, err)

		require.Len(t, groups, 1)
		assert.Equal(t, "EUR", groups[0].Currency.Code)
	})

	t.Run("tag dimension joins the tag table", func(t *testing.T) {
		groups, err := repo.ListExpenses(ctx, date(1), date(30), []int{1}, DimensionTag, []int{1})
		require.NoError(t, err)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Groups, 1)
		assert.Equal(t, "vacation", groups[0].Groups[0].Name)
		require.Len(t, groups[0].Groups[0].Journals, 1)
		assert.Equal(t, "-50", groups[0].Groups[0].Journals[0].Amount.String())
	})
}

func TestCurrencyRepositoryPreferences(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := setupTestDB(t)
	defer tdb.cleanup(t)
	seedFixtures(t, tdb.database)

	repo := NewCurrencyRepository(tdb.database)
	ctx := context.Background()

	convert, err := repo.ConvertToPrimary(ctx)
	require.NoError(t, err)
	assert.False(t, convert, "missing preference defaults to native mode")

	require.NoError(t, tdb.database.Create(&models.Preference{Name: models.PrefPrimaryCurrency, Value: "EUR"}).Error)
	require.NoError(t, tdb.database.Create(&models.Preference{Name: models.PrefConvertToPrimary, Value: "true"}).Error)

	convert, err = repo.ConvertToPrimary(ctx)
	require.NoError(t, err)
	assert.True(t, convert)

	primary, err := repo.GetPrimaryCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", primary.Code)

	byCode, err := repo.GetByCode(ctx, "usd")
	require.NoError(t, err)
	assert.Equal(t, 1, byCode.ID, "code lookup is case-insensitive")
}

func TestRateRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	tdb := setupTestDB(t)
	defer tdb.cleanup(t)

	repo := NewRateRepository(tdb.database)
	ctx := context.Background()

	require.NoError(t, repo.StoreRate(ctx, &models.FXRate{
		FromCurrency: "eur", ToCurrency: "usd",
		Rate: decimal.RequireFromString("1.05"), Date: date(1),
	}))
	require.NoError(t, repo.StoreRate(ctx, &models.FXRate{
		FromCurrency: "EUR", ToCurrency: "USD",
		Rate: decimal.RequireFromString("1.10"), Date: date(10),
	}))

	rate, err := repo.GetRate(ctx, "EUR", "USD", date(15))
	require.NoError(t, err)
	assert.Equal(t, "1.1", rate.String(), "the newest rate on or before the date wins")

	rate, err = repo.GetRate(ctx, "EUR", "USD", date(5))
	require.NoError(t, err)
	assert.Equal(t, "1.05", rate.String(), "later rates do not apply retroactively")

	_, err = repo.GetRate(ctx, "EUR", "USD", date(1).AddDate(0, 0, -1))
	require.Error(t, err)
	var unavailable *apperrors.ErrRateUnavailable
	assert.True(t, errors.As(err, &unavailable))

	err = repo.StoreRate(ctx, &models.FXRate{FromCurrency: "EUR", ToCurrency: "EUR", Rate: decimal.NewFromInt(1), Date: date(1)})
	assert.Error(t, err, "identity pairs are rejected")
}
