package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/schedule"
)

// CreateTemplateInput is the input for creating a recurrence template.
type CreateTemplateInput struct {
	UserID     uuid.UUID
	BudgetID   uuid.UUID
	AccountID  uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Kind       string
	Amount     decimal.Decimal
	Currency   string
	Recurrence string
	Interval   int
	DayOfMonth *int
	Weekday    *time.Weekday
	StartDate  time.Time
}

// TemplateCreator inserts recurrence templates.
//
//go:generate mockery --name TemplateCreator --output mock_TemplateCreator.go
type TemplateCreator interface {
	CreateTemplate(ctx context.Context, tpl *schedule.Template) (uuid.UUID, error)
}

// TemplateService handles recurrence template business logic.
type TemplateService struct {
	creator TemplateCreator
	access  *AccessService
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(creator TemplateCreator, access *AccessService) *TemplateService {
	return &TemplateService{
		creator: creator,
		access:  access,
	}
}

// CreateTemplate validates and stores a recurrence rule. It does not
// materialize anything; the next scheduler run picks the template up.
func (s *TemplateService) CreateTemplate(ctx context.Context, in CreateTemplateInput) (uuid.UUID, error) {
	kind, err := engine.ParseKind(in.Kind)
	if err != nil {
		return uuid.Nil, err
	}
	recurrence, err := parseRecurrence(in.Recurrence)
	if err != nil {
		return uuid.Nil, err
	}
	if recurrence != schedule.RecurrenceNone && in.Interval < 1 {
		return uuid.Nil, fmt.Errorf("%w: interval %d", schedule.ErrInvalidRule, in.Interval)
	}
	if !in.Amount.IsPositive() {
		return uuid.Nil, fmt.Errorf("%w: amount must be positive", engine.ErrInvalidInput)
	}
	if len(in.Name) == 0 {
		return uuid.Nil, fmt.Errorf("%w: template name is required", engine.ErrInvalidInput)
	}

	caller, err := s.access.Caller(ctx, in.BudgetID, in.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	if !caller.Access.CanEdit() {
		return uuid.Nil, fmt.Errorf("%w: user %s cannot add templates to budget %s",
			engine.ErrAccessDenied, in.UserID, in.BudgetID)
	}

	return s.creator.CreateTemplate(ctx, &schedule.Template{
		BudgetID:   in.BudgetID,
		UserID:     in.UserID,
		AccountID:  in.AccountID,
		CategoryID: in.CategoryID,
		Name:       in.Name,
		Kind:       kind,
		Amount:     in.Amount,
		Currency:   in.Currency,
		Recurrence: recurrence,
		Interval:   in.Interval,
		DayOfMonth: in.DayOfMonth,
		Weekday:    in.Weekday,
		StartDate:  in.StartDate,
	})
}

func parseRecurrence(s string) (schedule.Recurrence, error) {
	switch strings.ToUpper(s) {
	case "", "NONE":
		return schedule.RecurrenceNone, nil
	case "DAILY":
		return schedule.RecurrenceDaily, nil
	case "WEEKLY":
		return schedule.RecurrenceWeekly, nil
	case "MONTHLY":
		return schedule.RecurrenceMonthly, nil
	case "YEARLY":
		return schedule.RecurrenceYearly, nil
	default:
		return 0, fmt.Errorf("%w: recurrence %q", engine.ErrInvalidInput, s)
	}
}
