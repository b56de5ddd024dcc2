package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-engine/internal/access"
	"github.com/carson-networks/budget-engine/internal/engine"
)

// autoPaymentMarker tags descriptions of transactions the scheduler
// materialized, so they are distinguishable from manual entries.
const autoPaymentMarker = " (automatic payment)"

// AccessResolver computes the caller's capabilities on a budget.
type AccessResolver interface {
	Resolve(ctx context.Context, budgetID, userID uuid.UUID) (access.BudgetAccessState, error)
}

// Engine replays every missed occurrence of each recurring template up
// to today. It is driven by wall-clock dates only: running it hourly,
// daily, or once after a long outage yields the same set of catch-up
// occurrences.
type Engine struct {
	processor engine.Processor
	templates TemplateStore
	access    AccessResolver
	now       func() time.Time
	log       *logrus.Logger
}

// NewEngine creates a recurrence engine over the processor chain.
func NewEngine(processor engine.Processor, templates TemplateStore, resolver AccessResolver, log *logrus.Logger) *Engine {
	return &Engine{
		processor: processor,
		templates: templates,
		access:    resolver,
		now:       time.Now,
		log:       log,
	}
}

// RunForUser catches up all of the user's recurring templates. Each
// template's loop is isolated: a failure in one is reported and does not
// stop the others. The combined error, if any, is returned after every
// template has had its turn.
func (e *Engine) RunForUser(ctx context.Context, userID uuid.UUID) error {
	templates, err := e.templates.FindRecurringForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	var errs []error
	for i := range templates {
		tpl := &templates[i]
		if err := e.catchUp(ctx, tpl); err != nil {
			e.log.WithError(err).WithFields(logrus.Fields{
				"templateID": tpl.ID.String(),
				"template":   tpl.Name,
			}).Error("Schedule.catchUp")
			errs = append(errs, fmt.Errorf("template %s: %w", tpl.Name, err))
		}
	}
	return errors.Join(errs...)
}

// catchUp materializes every due occurrence of one template, oldest
// first, advancing the persisted last-execution date after each success
// so a crash mid-loop resumes from the last committed occurrence. A
// materialization failure stops this template's loop; the occurrence is
// retried on the next run because its date was never marked executed.
func (e *Engine) catchUp(ctx context.Context, tpl *Template) error {
	if tpl.Recurrence == RecurrenceNone {
		return nil
	}
	if tpl.Interval < 1 {
		return fmt.Errorf("%w: interval %d", ErrInvalidRule, tpl.Interval)
	}

	today := dateOnly(e.now())
	start := dateOnly(tpl.StartDate)
	if start.After(today) {
		return nil
	}

	// The day-before offset makes the start date itself eligible on the
	// first run. An already-executed date must not get the offset or the
	// strictly-after occurrence math would repeat it.
	var cursor time.Time
	if tpl.LastExecuted != nil {
		cursor = dateOnly(*tpl.LastExecuted)
	} else {
		cursor = start.AddDate(0, 0, -1)
	}

	caller, err := e.resolveCaller(ctx, tpl)
	if err != nil {
		return err
	}

	materialized := 0
	for {
		next, err := nextOccurrence(tpl, cursor)
		if err != nil {
			return err
		}
		if next.After(today) {
			break
		}
		if !next.After(cursor) {
			return fmt.Errorf("%w: occurrence %s did not advance past %s",
				ErrInvalidRule, next.Format(time.DateOnly), cursor.Format(time.DateOnly))
		}

		if err := e.materialize(ctx, caller, tpl, next); err != nil {
			return fmt.Errorf("occurrence %s: %w", next.Format(time.DateOnly), err)
		}
		if err := e.templates.UpdateLastExecuted(ctx, tpl.ID, next); err != nil {
			return fmt.Errorf("persist last execution %s: %w", next.Format(time.DateOnly), err)
		}
		executed := next
		tpl.LastExecuted = &executed
		cursor = next
		materialized++
	}

	if materialized > 0 {
		e.log.WithFields(logrus.Fields{
			"templateID":  tpl.ID.String(),
			"occurrences": materialized,
		}).Info("Schedule.caughtUp")
	}
	return nil
}

func (e *Engine) resolveCaller(ctx context.Context, tpl *Template) (engine.Caller, error) {
	state, err := e.access.Resolve(ctx, tpl.BudgetID, tpl.UserID)
	if err != nil {
		return engine.Caller{}, fmt.Errorf("resolve access: %w", err)
	}
	return engine.Caller{UserID: tpl.UserID, Access: state}, nil
}

func (e *Engine) materialize(ctx context.Context, caller engine.Caller, tpl *Template, date time.Time) error {
	templateID := tpl.ID
	_, err := e.processor.Create(ctx, caller, engine.Transaction{
		BudgetID:    tpl.BudgetID,
		AccountID:   tpl.AccountID,
		CategoryID:  tpl.CategoryID,
		TemplateID:  &templateID,
		Kind:        tpl.Kind,
		Amount:      tpl.Amount,
		Currency:    tpl.Currency,
		Description: tpl.Name + autoPaymentMarker,
		Date:        date,
	})
	return err
}
