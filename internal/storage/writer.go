package storage

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/storage/account"
	"github.com/carson-networks/budget-engine/internal/storage/goal"
	"github.com/carson-networks/budget-engine/internal/storage/transaction"
)

// Writer is one database transaction. It satisfies the engine's unit of
// work: every row the finders touch stays locked until Commit or
// Rollback.
type Writer struct {
	tx           bob.Tx
	Accounts     *account.Writer
	Transactions *transaction.Writer
	Goals        *goal.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:           tx,
		Accounts:     account.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Goals:        goal.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}

func (w *Writer) FindAccountForUpdate(ctx context.Context, id uuid.UUID) (*engine.Account, error) {
	return w.Accounts.FindByIDForUpdate(ctx, id)
}

func (w *Writer) UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return w.Accounts.UpdateBalance(ctx, id, balance)
}

func (w *Writer) InsertTransaction(ctx context.Context, tx *engine.Transaction) (uuid.UUID, error) {
	return w.Transactions.Insert(ctx, tx)
}

func (w *Writer) ReplaceTransaction(ctx context.Context, tx *engine.Transaction) error {
	return w.Transactions.Replace(ctx, tx)
}

func (w *Writer) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return w.Transactions.Delete(ctx, id)
}

func (w *Writer) FindTransactionForUpdate(ctx context.Context, id uuid.UUID) (*engine.Transaction, error) {
	return w.Transactions.FindByIDForUpdate(ctx, id)
}

func (w *Writer) FindGoalForUpdate(ctx context.Context, id uuid.UUID) (*engine.Goal, error) {
	return w.Goals.FindByIDForUpdate(ctx, id)
}

func (w *Writer) UpdateGoalAccumulated(ctx context.Context, id uuid.UUID, accumulated decimal.Decimal) error {
	return w.Goals.UpdateAccumulated(ctx, id, accumulated)
}
