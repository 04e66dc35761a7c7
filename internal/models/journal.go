package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JournalEntry is the stored form of one transaction leg.
type JournalEntry struct {
	ID                   string              `json:"id" gorm:"primaryKey;size:36"`
	Date                 time.Time           `json:"date" gorm:"index"`
	Description          string              `json:"description"`
	TransactionType      string              `json:"transaction_type" gorm:"index;size:32"`
	Amount               decimal.Decimal     `json:"amount" gorm:"type:decimal(30,12)"`
	CurrencyID           int                 `json:"currency_id" gorm:"index"`
	ForeignAmount        decimal.NullDecimal `json:"foreign_amount" gorm:"type:decimal(30,12)"`
	ForeignCurrencyID    *int                `json:"foreign_currency_id"`
	PrimaryAmount        decimal.NullDecimal `json:"pc_amount" gorm:"column:pc_amount;type:decimal(30,12)"`
	SourceAccountID      int                 `json:"source_account_id" gorm:"index"`
	DestinationAccountID int                 `json:"destination_account_id" gorm:"index"`
	BudgetID             *int                `json:"budget_id" gorm:"index"`
	CategoryID           *int                `json:"category_id" gorm:"index"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

func (JournalEntry) TableName() string { return "journals" }

// BeforeCreate assigns a UUID when the caller did not pick an id.
func (j *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}

// Transaction types stored on journal entries.
const (
	TypeWithdrawal = "withdrawal"
	TypeDeposit    = "deposit"
	TypeTransfer   = "transfer"
)

// JournalTag links a journal entry to a tag.
type JournalTag struct {
	JournalID string `gorm:"primaryKey;size:36"`
	TagID     int    `gorm:"primaryKey"`
}

func (JournalTag) TableName() string { return "journal_tags" }

// Journal is the read model the aggregation engine consumes: one transaction
// leg with its classification names resolved. Amount is signed from the
// perspective of the reported accounts; negative means spent.
type Journal struct {
	ID                     string           `json:"id"`
	Date                   time.Time        `json:"date"`
	Amount                 decimal.Decimal  `json:"amount"`
	Currency               Currency         `json:"currency"`
	ForeignAmount          *decimal.Decimal `json:"foreign_amount,omitempty"`
	ForeignCurrency        *Currency        `json:"foreign_currency,omitempty"`
	PrimaryAmount          *decimal.Decimal `json:"pc_amount,omitempty"`
	SourceAccountName      string           `json:"source_account_name"`
	DestinationAccountName string           `json:"destination_account_name"`
	BudgetName             string           `json:"budget_name,omitempty"`
	CategoryName           string           `json:"category_name,omitempty"`
}

// DimensionGroup is one bucket of journals under a grouping dimension item
// (one budget, one category, one tag).
type DimensionGroup struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Journals []*Journal `json:"transaction_journals"`
}

// CurrencyGroup is one currency bucket of an operations listing. When the
// listing was made with a grouping dimension, journals live in Groups;
// otherwise they are flat in Journals.
type CurrencyGroup struct {
	Currency Currency          `json:"currency"`
	Journals []*Journal        `json:"transaction_journals,omitempty"`
	Groups   []*DimensionGroup `json:"groups,omitempty"`
}

// Period is a reporting date range.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
