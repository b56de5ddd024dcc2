package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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
// ends. Returns nil, nil when the account does not exist.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*engine.Account, error) {
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
	return rowToAccount(row), nil
}

// Insert creates a new account and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, a *engine.Account) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(table, "budget_id", "owner_id", "name", "currency", "balance", "shared"),
		im.Values(psql.Arg(a.BudgetID, a.OwnerID, a.Name, a.Currency, a.Balance, a.Shared)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// UpdateBalance updates the balance for a given account.
func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := psql.Update(
		um.Table(table),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}
