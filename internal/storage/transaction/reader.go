package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-engine/internal/engine"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns nil, nil when the transaction does not exist.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*engine.Transaction, error) {
	query := psql.Select(
		sm.Columns(columns()...),
		sm.From(table),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[Row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row), nil
}

// ListByBudget returns the budget's transactions, newest first. Nil
// filter returns the default first page.
func (r *Reader) ListByBudget(ctx context.Context, budgetID uuid.UUID, filter *Filter) ([]*engine.Transaction, error) {
	limit := 20
	offset := 0
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns()...),
		sm.From(table),
		sm.Where(psql.Quote("budget_id").EQ(psql.Arg(budgetID))),
	}
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
	}
	queryMods = append(queryMods,
		sm.OrderBy("transaction_date").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(limit),
		sm.Offset(offset),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}
	result := make([]*engine.Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}
