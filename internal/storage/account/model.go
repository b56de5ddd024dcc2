package account

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

const table = "accounts"

// Row is the accounts table shape.
type Row struct {
	ID        uuid.UUID       `db:"id"`
	BudgetID  uuid.UUID       `db:"budget_id"`
	OwnerID   uuid.UUID       `db:"owner_id"`
	Name      string          `db:"name"`
	Currency  string          `db:"currency"`
	Balance   decimal.Decimal `db:"balance"`
	Shared    bool            `db:"shared"`
	CreatedAt time.Time       `db:"created_at"`
}

func columns() []any {
	return []any{"id", "budget_id", "owner_id", "name", "currency", "balance", "shared", "created_at"}
}

func rowToAccount(row Row) *engine.Account {
	return &engine.Account{
		ID:        row.ID,
		BudgetID:  row.BudgetID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Currency:  row.Currency,
		Balance:   row.Balance,
		Shared:    row.Shared,
		CreatedAt: row.CreatedAt,
	}
}
