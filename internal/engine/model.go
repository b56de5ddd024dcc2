package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/access"
)

// Kind classifies a transaction as money in or money out. Amounts are
// always non-negative magnitudes; the sign of the balance delta derives
// from the kind alone.
type Kind int8

const (
	KindIncome Kind = iota
	KindExpense
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "INCOME"
	case KindExpense:
		return "EXPENSE"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// ParseKind maps a wire name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "INCOME":
		return KindIncome, nil
	case "EXPENSE":
		return KindExpense, nil
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrInvalidInput, s)
	}
}

// Transaction is a single monetary movement against one account.
type Transaction struct {
	ID          uuid.UUID
	BudgetID    uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	TemplateID  *uuid.UUID
	Kind        Kind
	Amount      decimal.Decimal
	Currency    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// Reversal is the committed state of a transaction needed to undo its
// balance effect during an update or delete. It is passed explicitly so
// the entity struct is never reused as a scratch area for pre-edit
// snapshots.
type Reversal struct {
	AccountID uuid.UUID
	Kind      Kind
	Amount    decimal.Decimal
}

// Account is an account as the engine sees it. The balance field is the
// base-currency sum of all non-reverted transactions ever applied and is
// only ever mutated through the processor.
type Account struct {
	ID        uuid.UUID
	BudgetID  uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Currency  string
	Balance   decimal.Decimal
	Shared    bool
	CreatedAt time.Time
}

// Goal is a savings target funded by expense transactions.
type Goal struct {
	ID                uuid.UUID
	BudgetID          uuid.UUID
	Name              string
	TargetAmount      decimal.Decimal
	AccumulatedAmount decimal.Decimal
	Currency          string
}

// Caller identifies who is invoking an operation and what they may do on
// the budget involved. It replaces the original design's session
// singleton; every operation receives it explicitly.
type Caller struct {
	UserID uuid.UUID
	Access access.BudgetAccessState
}

// delta is the signed balance effect of applying a transaction.
func delta(kind Kind, amount decimal.Decimal) decimal.Decimal {
	if kind == KindIncome {
		return amount
	}
	return amount.Neg()
}

// canWrite reports whether the caller may mutate transactions on the
// account: either they own it, or it is shared within the budget and
// their role allows editing.
func canWrite(caller Caller, account *Account) bool {
	if account.OwnerID == caller.UserID {
		return true
	}
	return account.Shared && caller.Access.CanEdit()
}
