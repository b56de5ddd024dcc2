package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-engine/internal/access"
	"github.com/carson-networks/budget-engine/internal/engine"
)

// RoleFinder looks up a user's stored role on a budget.
//
//go:generate mockery --name RoleFinder --output mock_RoleFinder.go
type RoleFinder interface {
	FindRole(ctx context.Context, budgetID, userID uuid.UUID) (string, error)
}

// AccessService resolves per-budget capabilities. Every operation
// receives the resolved caller explicitly; nothing is cached between
// requests.
type AccessService struct {
	roles RoleFinder
}

// NewAccessService creates a new AccessService.
func NewAccessService(roles RoleFinder) *AccessService {
	return &AccessService{roles: roles}
}

// Resolve returns the user's capabilities on the budget. An unknown or
// absent role resolves to no access.
func (s *AccessService) Resolve(ctx context.Context, budgetID, userID uuid.UUID) (access.BudgetAccessState, error) {
	role, err := s.roles.FindRole(ctx, budgetID, userID)
	if err != nil {
		return access.BudgetAccessState{}, err
	}
	return access.ForRole(access.ParseRole(role)), nil
}

// Caller resolves the engine caller value for one operation.
func (s *AccessService) Caller(ctx context.Context, budgetID, userID uuid.UUID) (engine.Caller, error) {
	state, err := s.Resolve(ctx, budgetID, userID)
	if err != nil {
		return engine.Caller{}, err
	}
	return engine.Caller{UserID: userID, Access: state}, nil
}
