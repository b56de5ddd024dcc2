package engine

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Processor is the single authority tying a transaction record to
// exactly one balance delta. Every operation is one atomic unit of
// work: both mutations commit together or neither does. Decorators wrap
// this same contract, so callers always hold the outermost link of the
// chain (see NewChain).
type Processor interface {
	// Create applies a new transaction and its balance delta. The
	// transaction amount must already be in the base currency.
	Create(ctx context.Context, caller Caller, tx Transaction) (uuid.UUID, error)

	// Update reverses the committed original's balance effect, applies
	// the updated transaction's effect (possibly on a different account),
	// and replaces the row wholesale.
	Update(ctx context.Context, caller Caller, original Reversal, updated Transaction) error

	// Delete reverses and removes a transaction. A missing id is treated
	// as already deleted and is not an error.
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error

	// TransferToGoal books an expense against the source account and
	// raises the goal's accumulated amount in the same unit of work.
	TransferToGoal(ctx context.Context, caller Caller, accountID, goalID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error)
}

// Store is the persistence surface the engine consumes. Reads outside a
// unit of work (decorator validation) go through the finders; all
// mutations go through a UnitOfWork obtained from Write.
//
//go:generate mockery --name Store --output mock_Store.go
type Store interface {
	Write(ctx context.Context) (UnitOfWork, error)

	// FindAccount returns nil, nil when the account does not exist.
	FindAccount(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindTransaction returns nil, nil when the transaction does not exist.
	FindTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
}

// UnitOfWork is one caller-scoped atomic boundary. Finders lock the row
// for the duration of the unit of work. Exactly one of Commit or
// Rollback must be called on every path.
type UnitOfWork interface {
	FindAccountForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	InsertTransaction(ctx context.Context, tx *Transaction) (uuid.UUID, error)
	ReplaceTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	FindTransactionForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)

	FindGoalForUpdate(ctx context.Context, id uuid.UUID) (*Goal, error)
	UpdateGoalAccumulated(ctx context.Context, id uuid.UUID, accumulated decimal.Decimal) error

	Commit() error
	Rollback() error
}
