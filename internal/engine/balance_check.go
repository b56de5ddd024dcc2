package engine

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// BalanceCheckDecorator rejects operations that would drive an account
// balance negative. It must sit outside the currency decorator so it
// validates final, converted amounts; NewChain enforces that order.
type BalanceCheckDecorator struct {
	next  Processor
	store Store
	log   *logrus.Logger
}

var _ Processor = (*BalanceCheckDecorator)(nil)

// NewBalanceCheckDecorator creates the sufficient-funds policy around next.
func NewBalanceCheckDecorator(next Processor, store Store, log *logrus.Logger) *BalanceCheckDecorator {
	return &BalanceCheckDecorator{
		next:  next,
		store: store,
		log:   log,
	}
}

func (d *BalanceCheckDecorator) loadAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	account, err := d.store.FindAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: find account: %v", ErrStorage, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return account, nil
}

func insufficient(accountID uuid.UUID, balance, requested decimal.Decimal) error {
	return fmt.Errorf("%w: account %s holds %s, operation requires %s",
		ErrInsufficientFunds, accountID, balance, requested)
}

// Create rejects an expense larger than the current balance.
func (d *BalanceCheckDecorator) Create(ctx context.Context, caller Caller, tx Transaction) (uuid.UUID, error) {
	if tx.Kind == KindExpense {
		account, err := d.loadAccount(ctx, tx.AccountID)
		if err != nil {
			return uuid.Nil, err
		}
		if account.Balance.LessThan(tx.Amount) {
			return uuid.Nil, insufficient(account.ID, account.Balance, tx.Amount)
		}
	}
	return d.next.Create(ctx, caller, tx)
}

// Update checks the net effect when the expense stays on the same
// account, because the original amount is un-applied in the same
// operation. A changed account is checked against the raw new amount.
func (d *BalanceCheckDecorator) Update(ctx context.Context, caller Caller, original Reversal, updated Transaction) error {
	if updated.Kind == KindExpense {
		if updated.AccountID == original.AccountID {
			account, err := d.loadAccount(ctx, updated.AccountID)
			if err != nil {
				return err
			}
			available := account.Balance.Sub(delta(original.Kind, original.Amount))
			if available.LessThan(updated.Amount) {
				return insufficient(account.ID, available, updated.Amount)
			}
		} else {
			account, err := d.loadAccount(ctx, updated.AccountID)
			if err != nil {
				return err
			}
			if account.Balance.LessThan(updated.Amount) {
				return insufficient(account.ID, account.Balance, updated.Amount)
			}
		}
	}
	return d.next.Update(ctx, caller, original, updated)
}

// Delete treats removing an income record symmetrically to spending that
// amount: the reversal must not leave the balance negative.
func (d *BalanceCheckDecorator) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	row, err := d.store.FindTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: find transaction: %v", ErrStorage, err)
	}
	if row != nil && row.Kind == KindIncome {
		account, err := d.loadAccount(ctx, row.AccountID)
		if err != nil {
			return err
		}
		if account.Balance.Sub(row.Amount).IsNegative() {
			return insufficient(account.ID, account.Balance, row.Amount)
		}
	}
	return d.next.Delete(ctx, caller, id)
}

// TransferToGoal checks the source account exactly as a plain expense.
func (d *BalanceCheckDecorator) TransferToGoal(ctx context.Context, caller Caller, accountID, goalID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	account, err := d.loadAccount(ctx, accountID)
	if err != nil {
		return uuid.Nil, err
	}
	if account.Balance.LessThan(amount) {
		return uuid.Nil, insufficient(account.ID, account.Balance, amount)
	}
	return d.next.TransferToGoal(ctx, caller, accountID, goalID, amount)
}
