package schedule

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

// Recurrence is how often a template materializes.
type Recurrence int8

const (
	RecurrenceNone Recurrence = iota
	RecurrenceDaily
	RecurrenceWeekly
	RecurrenceMonthly
	RecurrenceYearly
)

// Template is a recurrence rule that stamps out transactions. Interval
// means "every N periods". DayOfMonth anchors MONTHLY/YEARLY rules;
// Weekday anchors WEEKLY ones. LastExecuted is nil until the first
// occurrence has been materialized and is advanced after every
// successful one, so a restart never re-runs an executed occurrence.
type Template struct {
	ID           uuid.UUID
	BudgetID     uuid.UUID
	UserID       uuid.UUID
	AccountID    uuid.UUID
	CategoryID   uuid.UUID
	Name         string
	Kind         engine.Kind
	Amount       decimal.Decimal
	Currency     string
	Recurrence   Recurrence
	Interval     int
	DayOfMonth   *int
	Weekday      *time.Weekday
	StartDate    time.Time
	LastExecuted *time.Time
}

// TemplateStore persists recurrence rules and their execution progress.
//
//go:generate mockery --name TemplateStore --output mock_TemplateStore.go
type TemplateStore interface {
	FindRecurringForUser(ctx context.Context, userID uuid.UUID) ([]Template, error)
	UpdateLastExecuted(ctx context.Context, id uuid.UUID, date time.Time) error
}
