package template

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/schedule"
)

const table = "transaction_templates"

// Row is the transaction_templates table shape. The interval column is
// named recur_interval because INTERVAL is reserved in Postgres.
type Row struct {
	ID           uuid.UUID       `db:"id"`
	BudgetID     uuid.UUID       `db:"budget_id"`
	UserID       uuid.UUID       `db:"user_id"`
	AccountID    uuid.UUID       `db:"account_id"`
	CategoryID   uuid.UUID       `db:"category_id"`
	Name         string          `db:"name"`
	Kind         int16           `db:"kind"`
	Amount       decimal.Decimal `db:"amount"`
	Currency     string          `db:"currency"`
	Recurrence   int16           `db:"recurrence"`
	Interval     int             `db:"recur_interval"`
	DayOfMonth   *int16          `db:"day_of_month"`
	Weekday      *int16          `db:"weekday"`
	StartDate    time.Time       `db:"start_date"`
	LastExecuted *time.Time      `db:"last_executed"`
}

func columns() []any {
	return []any{
		"id", "budget_id", "user_id", "account_id", "category_id",
		"name", "kind", "amount", "currency", "recurrence",
		"recur_interval", "day_of_month", "weekday", "start_date", "last_executed",
	}
}

func rowToTemplate(row Row) schedule.Template {
	tpl := schedule.Template{
		ID:           row.ID,
		BudgetID:     row.BudgetID,
		UserID:       row.UserID,
		AccountID:    row.AccountID,
		CategoryID:   row.CategoryID,
		Name:         row.Name,
		Kind:         engine.Kind(row.Kind),
		Amount:       row.Amount,
		Currency:     row.Currency,
		Recurrence:   schedule.Recurrence(row.Recurrence),
		Interval:     row.Interval,
		StartDate:    row.StartDate,
		LastExecuted: row.LastExecuted,
	}
	if row.DayOfMonth != nil {
		day := int(*row.DayOfMonth)
		tpl.DayOfMonth = &day
	}
	if row.Weekday != nil {
		weekday := time.Weekday(*row.Weekday)
		tpl.Weekday = &weekday
	}
	return tpl
}
