package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-engine/internal/engine"
)

type Writer struct {
	exec bob.Executor
	Reader
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

// FindByIDForUpdate locks the row until the surrounding transaction
// ends. Returns nil, nil when the transaction does not exist.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*engine.Transaction, error) {
	query := psql.Select(
		sm.Columns(columns()...),
		sm.From(table),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[Row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row), nil
}

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, tx *engine.Transaction) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(table,
			"budget_id", "account_id", "category_id", "template_id",
			"kind", "amount", "currency", "description", "transaction_date",
		),
		im.Values(psql.Arg(
			tx.BudgetID, tx.AccountID, tx.CategoryID, tx.TemplateID,
			int16(tx.Kind), tx.Amount, tx.Currency, tx.Description, tx.Date,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// Replace overwrites every mutable column of the row identified by
// tx.ID.
func (w *Writer) Replace(ctx context.Context, tx *engine.Transaction) error {
	query := psql.Update(
		um.Table(table),
		um.SetCol("account_id").ToArg(tx.AccountID),
		um.SetCol("category_id").ToArg(tx.CategoryID),
		um.SetCol("kind").ToArg(int16(tx.Kind)),
		um.SetCol("amount").ToArg(tx.Amount),
		um.SetCol("currency").ToArg(tx.Currency),
		um.SetCol("description").ToArg(tx.Description),
		um.SetCol("transaction_date").ToArg(tx.Date),
		um.Where(psql.Quote("id").EQ(psql.Arg(tx.ID))),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}

// Delete removes the row. Deleting an absent id is not an error.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(table),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}
