package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BaseProcessor is the innermost Processor: it owns the unit of work and
// performs the actual balance and row mutations. It assumes amounts are
// already normalized to the base currency; currency handling and funds
// validation live in the decorators wrapped around it.
type BaseProcessor struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

var _ Processor = (*BaseProcessor)(nil)

// NewProcessor creates the base processor over the given store.
func NewProcessor(store Store, log *logrus.Logger) *BaseProcessor {
	return &BaseProcessor{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// inUnitOfWork opens one unit of work, runs fn, and commits on success
// or rolls back on any error. The unit of work never leaks: every exit
// path releases it.
func (p *BaseProcessor) inUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow, err := p.store.Write(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}

	if err := fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			p.log.WithError(rbErr).Error("Processor.Rollback")
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorage, err)
	}
	return nil
}

func validate(tx Transaction) error {
	if tx.AccountID.IsNil() {
		return fmt.Errorf("%w: missing account", ErrInvalidInput)
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, tx.Amount)
	}
	if tx.Kind != KindIncome && tx.Kind != KindExpense {
		return fmt.Errorf("%w: kind %d", ErrInvalidInput, tx.Kind)
	}
	return nil
}

// Create persists the transaction row and its balance delta together.
func (p *BaseProcessor) Create(ctx context.Context, caller Caller, tx Transaction) (uuid.UUID, error) {
	if err := validate(tx); err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err := p.inUnitOfWork(ctx, func(uow UnitOfWork) error {
		insertedID, err := p.createInUnit(ctx, uow, caller, tx)
		if err != nil {
			return err
		}
		id = insertedID
		return nil
	})
	return id, err
}

// createInUnit is the insert path shared by Create and TransferToGoal.
// It runs inside an already-open unit of work.
func (p *BaseProcessor) createInUnit(ctx context.Context, uow UnitOfWork, caller Caller, tx Transaction) (uuid.UUID, error) {
	account, err := uow.FindAccountForUpdate(ctx, tx.AccountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: find account: %v", ErrStorage, err)
	}
	if account == nil {
		return uuid.Nil, fmt.Errorf("%w: account %s", ErrNotFound, tx.AccountID)
	}
	if !canWrite(caller, account) {
		return uuid.Nil, fmt.Errorf("%w: account %s", ErrAccessDenied, tx.AccountID)
	}

	id, err := uow.InsertTransaction(ctx, &tx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: insert transaction: %v", ErrStorage, err)
	}

	newBalance := account.Balance.Add(delta(tx.Kind, tx.Amount))
	if err := uow.UpdateAccountBalance(ctx, account.ID, newBalance); err != nil {
		return uuid.Nil, fmt.Errorf("%w: update balance: %v", ErrStorage, err)
	}

	return id, nil
}

// Update un-applies the original's balance effect and applies the
// updated one. When the account changed, the reversal lands on the
// original account and the new effect on the new account, still inside
// one unit of work.
func (p *BaseProcessor) Update(ctx context.Context, caller Caller, original Reversal, updated Transaction) error {
	if err := validate(updated); err != nil {
		return err
	}
	if updated.ID.IsNil() {
		return fmt.Errorf("%w: missing transaction id", ErrInvalidInput)
	}

	return p.inUnitOfWork(ctx, func(uow UnitOfWork) error {
		source, err := uow.FindAccountForUpdate(ctx, original.AccountID)
		if err != nil {
			return fmt.Errorf("%w: find original account: %v", ErrStorage, err)
		}
		if source == nil {
			return fmt.Errorf("%w: account %s", ErrNotFound, original.AccountID)
		}
		if !canWrite(caller, source) {
			return fmt.Errorf("%w: account %s", ErrAccessDenied, original.AccountID)
		}

		reversed := delta(original.Kind, original.Amount)
		applied := delta(updated.Kind, updated.Amount)

		if updated.AccountID == original.AccountID {
			balance := source.Balance.Sub(reversed).Add(applied)
			if err := uow.UpdateAccountBalance(ctx, source.ID, balance); err != nil {
				return fmt.Errorf("%w: update balance: %v", ErrStorage, err)
			}
		} else {
			target, err := uow.FindAccountForUpdate(ctx, updated.AccountID)
			if err != nil {
				return fmt.Errorf("%w: find new account: %v", ErrStorage, err)
			}
			if target == nil {
				return fmt.Errorf("%w: account %s", ErrNotFound, updated.AccountID)
			}
			if !canWrite(caller, target) {
				return fmt.Errorf("%w: account %s", ErrAccessDenied, updated.AccountID)
			}

			if err := uow.UpdateAccountBalance(ctx, source.ID, source.Balance.Sub(reversed)); err != nil {
				return fmt.Errorf("%w: update original balance: %v", ErrStorage, err)
			}
			if err := uow.UpdateAccountBalance(ctx, target.ID, target.Balance.Add(applied)); err != nil {
				return fmt.Errorf("%w: update new balance: %v", ErrStorage, err)
			}
		}

		if err := uow.ReplaceTransaction(ctx, &updated); err != nil {
			return fmt.Errorf("%w: replace transaction: %v", ErrStorage, err)
		}
		return nil
	})
}

// Delete reverses and removes a transaction. Deleting an id that no
// longer exists is a no-op so retried deletes stay idempotent.
func (p *BaseProcessor) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	return p.inUnitOfWork(ctx, func(uow UnitOfWork) error {
		row, err := uow.FindTransactionForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: find transaction: %v", ErrStorage, err)
		}
		if row == nil {
			p.log.WithField("transactionID", id.String()).Debug("Processor.Delete.alreadyDeleted")
			return nil
		}

		account, err := uow.FindAccountForUpdate(ctx, row.AccountID)
		if err != nil {
			return fmt.Errorf("%w: find account: %v", ErrStorage, err)
		}
		if account == nil {
			return fmt.Errorf("%w: account %s", ErrNotFound, row.AccountID)
		}
		if !canWrite(caller, account) {
			return fmt.Errorf("%w: account %s", ErrAccessDenied, row.AccountID)
		}

		balance := account.Balance.Sub(delta(row.Kind, row.Amount))
		if err := uow.UpdateAccountBalance(ctx, account.ID, balance); err != nil {
			return fmt.Errorf("%w: update balance: %v", ErrStorage, err)
		}
		if err := uow.DeleteTransaction(ctx, id); err != nil {
			return fmt.Errorf("%w: delete transaction: %v", ErrStorage, err)
		}
		return nil
	})
}

// TransferToGoal books the contribution expense and raises the goal's
// accumulated amount inside the same unit of work; the two are never
// independently committable.
func (p *BaseProcessor) TransferToGoal(ctx context.Context, caller Caller, accountID, goalID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	if !amount.IsPositive() {
		return uuid.Nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, amount)
	}

	var id uuid.UUID
	err := p.inUnitOfWork(ctx, func(uow UnitOfWork) error {
		goal, err := uow.FindGoalForUpdate(ctx, goalID)
		if err != nil {
			return fmt.Errorf("%w: find goal: %v", ErrStorage, err)
		}
		if goal == nil {
			return fmt.Errorf("%w: goal %s", ErrNotFound, goalID)
		}

		tx := Transaction{
			BudgetID:    goal.BudgetID,
			AccountID:   accountID,
			Kind:        KindExpense,
			Amount:      amount,
			Currency:    goal.Currency,
			Description: fmt.Sprintf("Goal contribution: %s", goal.Name),
			Date:        p.now(),
		}
		insertedID, err := p.createInUnit(ctx, uow, caller, tx)
		if err != nil {
			return err
		}

		accumulated := goal.AccumulatedAmount.Add(amount)
		if err := uow.UpdateGoalAccumulated(ctx, goalID, accumulated); err != nil {
			return fmt.Errorf("%w: update goal: %v", ErrStorage, err)
		}

		id = insertedID
		return nil
	})
	return id, err
}
