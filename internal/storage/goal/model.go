package goal

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

const table = "goals"

// Row is the goals table shape.
type Row struct {
	ID                uuid.UUID       `db:"id"`
	BudgetID          uuid.UUID       `db:"budget_id"`
	Name              string          `db:"name"`
	TargetAmount      decimal.Decimal `db:"target_amount"`
	AccumulatedAmount decimal.Decimal `db:"accumulated_amount"`
	Currency          string          `db:"currency"`
}

func columns() []any {
	return []any{"id", "budget_id", "name", "target_amount", "accumulated_amount", "currency"}
}

func rowToGoal(row Row) *engine.Goal {
	return &engine.Goal{
		ID:                row.ID,
		BudgetID:          row.BudgetID,
		Name:              row.Name,
		TargetAmount:      row.TargetAmount,
		AccumulatedAmount: row.AccumulatedAmount,
		Currency:          row.Currency,
	}
}
