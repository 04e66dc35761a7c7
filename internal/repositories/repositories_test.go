package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tdhoang/centavo/internal/db"
	"github.com/tdhoang/centavo/internal/models"
)

type testDB struct {
	container testcontainers.Container
	database  *db.DB
}

func setupTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()

	pgC, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	gormDB, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	database := &db.DB{DB: gormDB}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &testDB{container: pgC, database: database}
}

func (tdb *testDB) cleanup(t *testing.T) {
	if err := tdb.container.Terminate(context.Background()); err != nil {
		t.Errorf("Failed to terminate container: %v", err)
	}
}

func date(day int) time.Time {
	return time.Date(2023, time.June, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

// seedFixtures loads a small two-currency books: a checking account paying a
// supermarket and a landlord, a salary deposit, and a transfer to savings.
func seedFixtures(t *testing.T, database *db.DB) {
	t.Helper()

	usd := models.Currency{ID: 1, Code: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2}
	eur := models.Currency{ID: 2, Code: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2}
	require.NoError(t, database.Create(&usd).Error)
	require.NoError(t, database.Create(&eur).Error)

	accounts := []models.Account{
		{ID: 1, Name: "Checking"},
		{ID: 2, Name: "Savings"},
		{ID: 3, Name: "Supermarket"},
		{ID: 4, Name: "Landlord"},
		{ID: 5, Name: "Employer"},
	}
	for i := range accounts {
		require.NoError(t, database.Create(&accounts[i]).Error)
	}

	require.NoError(t, database.Create(&models.Budget{ID: 1, Name: "Bills"}).Error)
	require.NoError(t, database.Create(&models.Category{ID: 1, Name: "Groceries"}).Error)
	require.NoError(t, database.Create(&models.Category{ID: 2, Name: "Rent"}).Error)
	require.NoError(t, database.Create(&models.Tag{ID: 1, Name: "vacation"}).Error)

	journals := []models.JournalEntry{
		{
			ID: "j1", Date: date(5), Description: "weekly shop",
			TransactionType: models.TypeWithdrawal,
			Amount:          decimal.RequireFromString("50.00"),
			CurrencyID:      1, SourceAccountID: 1, DestinationAccountID: 3,
			CategoryID: intPtr(1),
		},
		{
			ID: "j2", Date: date(10), Description: "rent",
			TransactionType: models.TypeWithdrawal,
			Amount:          decimal.RequireFromString("800.00"),
			CurrencyID:      2, SourceAccountID: 1, DestinationAccountID: 4,
			BudgetID: intPtr(1), CategoryID: intPtr(2),
		},
		{
			ID: "j3", Date: date(25), Description: "salary",
			TransactionType: models.TypeDeposit,
			Amount:          decimal.RequireFromString("2000.00"),
			CurrencyID:      1, SourceAccountID: 5, DestinationAccountID: 1,
		},
		{
			ID: "j4", Date: date(26), Description: "to savings",
			TransactionType: models.TypeTransfer,
			Amount:          decimal.RequireFromString("300.00"),
			CurrencyID:      1, SourceAccountID: 1, DestinationAccountID: 2,
		},
	}
	for i := range journals {
		require.NoError(t, database.Create(&journals[i]).Error)
	}

	require.NoError(t, database.Create(&models.JournalTag{JournalID: "j1", TagID: 1}).Error)
}
