package goal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
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

// FindByID returns nil, nil when the goal does not exist.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*engine.Goal, error) {
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
	return rowToGoal(row), nil
}

// ListByBudget returns the budget's goals ordered by name.
func (r *Reader) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*engine.Goal, error) {
	query := psql.Select(
		sm.Columns(columns()...),
		sm.From(table),
		sm.Where(psql.Quote("budget_id").EQ(psql.Arg(budgetID))),
		sm.OrderBy("name").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}
	result := make([]*engine.Goal, len(rows))
	for i, row := range rows {
		result[i] = rowToGoal(row)
	}
	return result, nil
}
