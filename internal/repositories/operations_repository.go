package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdhoang/centavo/internal/db"
	"github.com/tdhoang/centavo/internal/models"
)

type operationsRepository struct {
	db *db.DB
}

// NewOperationsRepository creates a new operations repository
func NewOperationsRepository(database *db.DB) OperationsRepository {
	return &operationsRepository{db: database}
}

func (r *operationsRepository) ListByType(ctx context.Context, start, end time.Time, transactionType string) ([]*models.CurrencyGroup, error) {
	return r.list(ctx, listQuery{
		transactionType: transactionType,
		accountSide:     "source",
		start:           start,
		end:             end,
	})
}

func (r *operationsRepository) ListExpenses(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return r.list(ctx, listQuery{
		transactionType: models.TypeWithdrawal,
		accountSide:     "source",
		negate:          true,
		start:           start,
		end:             end,
		accountIDs:      accountIDs,
		dim:             dim,
		dimensionIDs:    dimensionIDs,
	})
}

func (r *operationsRepository) ListIncome(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return r.list(ctx, listQuery{
		transactionType: models.TypeDeposit,
		accountSide:     "destination",
		start:           start,
		end:             end,
		accountIDs:      accountIDs,
		dim:             dim,
		dimensionIDs:    dimensionIDs,
	})
}

func (r *operationsRepository) ListTransferredIn(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return r.list(ctx, listQuery{
		transactionType: models.TypeTransfer,
		accountSide:     "destination",
		start:           start,
		end:             end,
		accountIDs:      accountIDs,
		dim:             dim,
		dimensionIDs:    dimensionIDs,
	})
}

func (r *operationsRepository) ListTransferredOut(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error) {
	return r.list(ctx, listQuery{
		transactionType: models.TypeTransfer,
		accountSide:     "source",
		negate:          true,
		start:           start,
		end:             end,
		accountIDs:      accountIDs,
		dim:             dim,
		dimensionIDs:    dimensionIDs,
	})
}

type listQuery struct {
	transactionType string
	// accountSide is the journal side that must belong to the reported
	// account set: "source" for outflows, "destination" for inflows.
	accountSide  string
	negate       bool
	start        time.Time
	end          time.Time
	accountIDs   []int
	dim          Dimension
	dimensionIDs []int
}

func (r *operationsRepository) list(ctx context.Context, q listQuery) ([]*models.CurrencyGroup, error) {
	query, args := buildListQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	groups := make(map[int]*models.CurrencyGroup)
	dimGroups := make(map[int]map[int]*models.DimensionGroup)
	var order []int

	for rows.Next() {
		journal, currency, dimItem, err := scanJournalRow(rows, q.dim)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		if q.negate {
			journal.Amount = journal.Amount.Neg()
			if journal.ForeignAmount != nil {
				neg := journal.ForeignAmount.Neg()
				journal.ForeignAmount = &neg
			}
			if journal.PrimaryAmount != nil {
				neg := journal.PrimaryAmount.Neg()
				journal.PrimaryAmount = &neg
			}
		}

		group, ok := groups[currency.ID]
		if !ok {
			group = &models.CurrencyGroup{Currency: currency}
			groups[currency.ID] = group
			order = append(order, currency.ID)
		}

		if q.dim == DimensionNone {
			group.Journals = append(group.Journals, journal)
			continue
		}

		byItem, ok := dimGroups[currency.ID]
		if !ok {
			byItem = make(map[int]*models.DimensionGroup)
			dimGroups[currency.ID] = byItem
		}
		item, ok := byItem[dimItem.ID]
		if !ok {
			item = &models.DimensionGroup{ID: dimItem.ID, Name: dimItem.Name}
			byItem[dimItem.ID] = item
			group.Groups = append(group.Groups, item)
		}
		item.Journals = append(item.Journals, journal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journals: %w", err)
	}

	result := make([]*models.CurrencyGroup, 0, len(order))
	for _, id := range order {
		result = append(result, groups[id])
	}
	return result, nil
}

// buildListQuery assembles the join query for one journal listing. Postgres
// placeholders are numbered, so the WHERE clause is built incrementally.
func buildListQuery(q listQuery) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT j.id, j.date, j.amount, j.foreign_amount, j.pc_amount,
			c.id, c.code, c.symbol, c.name, c.decimal_places,
			fc.id, fc.code, fc.symbol, fc.name, fc.decimal_places,
			sa.name, da.name, b.name, cat.name`)

	switch q.dim {
	case DimensionBudget:
		sb.WriteString(", COALESCE(b.id, 0), COALESCE(b.name, '')")
	case DimensionCategory:
		sb.WriteString(", COALESCE(cat.id, 0), COALESCE(cat.name, '')")
	case DimensionTag:
		sb.WriteString(", t.id, t.name")
	}

	sb.WriteString(`
		FROM journals j
		JOIN currencies c ON c.id = j.currency_id
		LEFT JOIN currencies fc ON fc.id = j.foreign_currency_id
		JOIN accounts sa ON sa.id = j.source_account_id
		JOIN accounts da ON da.id = j.destination_account_id
		LEFT JOIN budgets b ON b.id = j.budget_id
		LEFT JOIN categories cat ON cat.id = j.category_id`)
	if q.dim == DimensionTag {
		sb.WriteString(`
		JOIN journal_tags jt ON jt.journal_id = j.id
		JOIN tags t ON t.id = jt.tag_id`)
	}

	args := []any{q.transactionType, q.start, q.end}
	sb.WriteString(`
		WHERE j.transaction_type = $1 AND j.date >= $2 AND j.date <= $3`)

	accountColumn := "j.source_account_id"
	if q.accountSide == "destination" {
		accountColumn = "j.destination_account_id"
	}
	if len(q.accountIDs) > 0 {
		sb.WriteString(fmt.Sprintf(" AND %s IN (%s)", accountColumn, placeholders(len(args)+1, len(q.accountIDs))))
		for _, id := range q.accountIDs {
			args = append(args, id)
		}
	}

	if len(q.dimensionIDs) > 0 {
		var column string
		switch q.dim {
		case DimensionBudget:
			column = "j.budget_id"
		case DimensionCategory:
			column = "j.category_id"
		case DimensionTag:
			column = "t.id"
		}
		if column != "" {
			sb.WriteString(fmt.Sprintf(" AND %s IN (%s)", column, placeholders(len(args)+1, len(q.dimensionIDs))))
			for _, id := range q.dimensionIDs {
				args = append(args, id)
			}
		}
	}

	sb.WriteString(" ORDER BY j.date, j.id")
	return sb.String(), args
}

func placeholders(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func scanJournalRow(rows *sql.Rows, dim Dimension) (*models.Journal, models.Currency, models.DimensionGroup, error) {
	var (
		journal       models.Journal
		currency      models.Currency
		foreignAmount decimal.NullDecimal
		primaryAmount decimal.NullDecimal
		fcID          sql.NullInt64
		fcCode        sql.NullString
		fcSymbol      sql.NullString
		fcName        sql.NullString
		fcPlaces      sql.NullInt32
		budgetName    sql.NullString
		categoryName  sql.NullString
		dimItem       models.DimensionGroup
	)

	dest := []any{
		&journal.ID, &journal.Date, &journal.Amount, &foreignAmount, &primaryAmount,
		&currency.ID, &currency.Code, &currency.Symbol, &currency.Name, &currency.DecimalPlaces,
		&fcID, &fcCode, &fcSymbol, &fcName, &fcPlaces,
		&journal.SourceAccountName, &journal.DestinationAccountName,
		&budgetName, &categoryName,
	}
	if dim != DimensionNone {
		dest = append(dest, &dimItem.ID, &dimItem.Name)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, currency, dimItem, err
	}

	journal.Currency = currency
	journal.BudgetName = budgetName.String
	journal.CategoryName = categoryName.String
	if foreignAmount.Valid {
		amount := foreignAmount.Decimal
		journal.ForeignAmount = &amount
	}
	if primaryAmount.Valid {
		amount := primaryAmount.Decimal
		journal.PrimaryAmount = &amount
	}
	if fcID.Valid {
		journal.ForeignCurrency = &models.Currency{
			ID:            int(fcID.Int64),
			Code:          fcCode.String,
			Symbol:        fcSymbol.String,
			Name:          fcName.String,
			DecimalPlaces: fcPlaces.Int32,
		}
	}
	return &journal, currency, dimItem, nil
}
