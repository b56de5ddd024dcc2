package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

const table = "transactions"

// Row is the transactions table shape.
type Row struct {
	ID          uuid.UUID       `db:"id"`
	BudgetID    uuid.UUID       `db:"budget_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	CategoryID  uuid.UUID       `db:"category_id"`
	TemplateID  *uuid.UUID      `db:"template_id"`
	Kind        int16           `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Description string          `db:"description"`
	Date        time.Time       `db:"transaction_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

// Filter narrows a transaction listing.
type Filter struct {
	AccountID *uuid.UUID
	Limit     int
	Offset    int
}

func columns() []any {
	return []any{
		"id", "budget_id", "account_id", "category_id", "template_id",
		"kind", "amount", "currency", "description", "transaction_date", "created_at",
	}
}

func rowToTransaction(row Row) *engine.Transaction {
	return &engine.Transaction{
		ID:          row.ID,
		BudgetID:    row.BudgetID,
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID,
		TemplateID:  row.TemplateID,
		Kind:        engine.Kind(row.Kind),
		Amount:      row.Amount,
		Currency:    row.Currency,
		Description: row.Description,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
	}
}
