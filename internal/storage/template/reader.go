package template

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-engine/internal/schedule"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListRecurringForUser returns the user's templates with a recurrence
// rule, oldest start date first.
func (r *Reader) ListRecurringForUser(ctx context.Context, userID uuid.UUID) ([]schedule.Template, error) {
	query := psql.Select(
		sm.Columns(columns()...),
		sm.From(table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("recurrence").NE(psql.Arg(int16(schedule.RecurrenceNone)))),
		sm.OrderBy("start_date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}
	result := make([]schedule.Template, len(rows))
	for i, row := range rows {
		result[i] = rowToTemplate(row)
	}
	return result, nil
}

// ListUsersWithRecurring returns the distinct owners of templates with a
// recurrence rule, for the background catch-up sweep.
func (r *Reader) ListUsersWithRecurring(ctx context.Context) ([]uuid.UUID, error) {
	query := psql.Select(
		sm.Distinct(),
		sm.Columns("user_id"),
		sm.From(table),
		sm.Where(psql.Quote("recurrence").NE(psql.Arg(int16(schedule.RecurrenceNone)))),
		sm.OrderBy("user_id").Asc(),
	)
	return bob.All(ctx, r.exec, query, scan.SingleColumnMapper[uuid.UUID])
}
