package template

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/budget-engine/internal/schedule"
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

// Insert creates a new template and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, tpl *schedule.Template) (uuid.UUID, error) {
	var dayOfMonth *int16
	if tpl.DayOfMonth != nil {
		day := int16(*tpl.DayOfMonth)
		dayOfMonth = &day
	}
	var weekday *int16
	if tpl.Weekday != nil {
		wd := int16(*tpl.Weekday)
		weekday = &wd
	}

	query := psql.Insert(
		im.Into(table,
			"budget_id", "user_id", "account_id", "category_id",
			"name", "kind", "amount", "currency", "recurrence",
			"recur_interval", "day_of_month", "weekday", "start_date",
		),
		im.Values(psql.Arg(
			tpl.BudgetID, tpl.UserID, tpl.AccountID, tpl.CategoryID,
			tpl.Name, int16(tpl.Kind), tpl.Amount, tpl.Currency, int16(tpl.Recurrence),
			tpl.Interval, dayOfMonth, weekday, tpl.StartDate,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.exec, query, scan.SingleColumnMapper[uuid.UUID])
}

// UpdateLastExecuted advances the template's execution progress.
func (w *Writer) UpdateLastExecuted(ctx context.Context, id uuid.UUID, date time.Time) error {
	query := psql.Update(
		um.Table(table),
		um.SetCol("last_executed").ToArg(date),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}
