package member

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const table = "budget_members"

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindRole returns the user's role string on the budget, or "" when the
// user is not a member.
func (r *Reader) FindRole(ctx context.Context, budgetID, userID uuid.UUID) (string, error) {
	query := psql.Select(
		sm.Columns("role"),
		sm.From(table),
		sm.Where(psql.Quote("budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	role, err := bob.One(ctx, r.exec, query, scan.SingleColumnMapper[string])
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

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

// Upsert sets the user's role on the budget, adding the membership if
// it does not exist yet.
func (w *Writer) Upsert(ctx context.Context, budgetID, userID uuid.UUID, role string) error {
	query := psql.Insert(
		im.Into(table, "budget_id", "user_id", "role"),
		im.Values(psql.Arg(budgetID, userID, role)),
		im.OnConflict("budget_id", "user_id").DoUpdate(
			im.SetExcluded("role"),
		),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}
