package goal

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
// ends. Returns nil, nil when the goal does not exist.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*engine.Goal, error) {
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
	return rowToGoal(row), nil
}

// Insert creates a new goal and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, g *engine.Goal) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(table, "budget_id", "name", "target_amount", "accumulated_amount", "currency"),
		im.Values(psql.Arg(g.BudgetID, g.Name, g.TargetAmount, g.AccumulatedAmount, g.Currency)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// UpdateAccumulated sets the goal's accumulated amount.
func (w *Writer) UpdateAccumulated(ctx context.Context, id uuid.UUID, accumulated decimal.Decimal) error {
	query := psql.Update(
		um.Table(table),
		um.SetCol("accumulated_amount").ToArg(accumulated),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}
