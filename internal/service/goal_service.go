package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

// ContributeInput is the input for funding a goal from an account.
type ContributeInput struct {
	UserID    uuid.UUID
	BudgetID  uuid.UUID
	AccountID uuid.UUID
	GoalID    uuid.UUID
	Amount    decimal.Decimal
}

// GoalService handles goal business logic. Contributions are booked
// through the processor chain so the account balance and the goal's
// accumulated amount move together.
type GoalService struct {
	processor engine.Processor
	access    *AccessService
}

// NewGoalService creates a new GoalService.
func NewGoalService(processor engine.Processor, access *AccessService) *GoalService {
	return &GoalService{
		processor: processor,
		access:    access,
	}
}

// Contribute moves money from an account into a goal and returns the
// ID of the expense transaction it booked.
func (s *GoalService) Contribute(ctx context.Context, in ContributeInput) (uuid.UUID, error) {
	caller, err := s.access.Caller(ctx, in.BudgetID, in.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	return s.processor.TransferToGoal(ctx, caller, in.AccountID, in.GoalID, in.Amount)
}
