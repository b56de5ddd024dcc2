package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-engine/internal/engine"
)

// AccountCreator inserts new accounts.
//
//go:generate mockery --name AccountCreator --output mock_AccountCreator.go
type AccountCreator interface {
	CreateAccount(ctx context.Context, a *engine.Account) (uuid.UUID, error)
}

// AccountLister reads a budget's accounts.
//
//go:generate mockery --name AccountLister --output mock_AccountLister.go
type AccountLister interface {
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*engine.Account, error)
}

// AccountService handles account business logic.
type AccountService struct {
	creator AccountCreator
	lister  AccountLister
	access  *AccessService
}

// NewAccountService creates a new AccountService.
func NewAccountService(creator AccountCreator, lister AccountLister, access *AccessService) *AccountService {
	return &AccountService{
		creator: creator,
		lister:  lister,
		access:  access,
	}
}

// CreateAccount creates a new account owned by the caller and returns
// its ID.
func (s *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (uuid.UUID, error) {
	caller, err := s.access.Caller(ctx, in.BudgetID, in.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	if !caller.Access.CanEdit() {
		return uuid.Nil, fmt.Errorf("%w: user %s cannot add accounts to budget %s",
			engine.ErrAccessDenied, in.UserID, in.BudgetID)
	}
	if len(in.Name) == 0 {
		return uuid.Nil, fmt.Errorf("%w: account name is required", engine.ErrInvalidInput)
	}

	return s.creator.CreateAccount(ctx, &engine.Account{
		BudgetID: in.BudgetID,
		OwnerID:  in.UserID,
		Name:     in.Name,
		Currency: in.Currency,
		Balance:  in.StartingBalance,
		Shared:   in.Shared,
	})
}

// ListAccounts returns the budget's accounts.
func (s *AccountService) ListAccounts(ctx context.Context, userID, budgetID uuid.UUID) ([]Account, error) {
	caller, err := s.access.Caller(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}
	if !caller.Access.View {
		return nil, fmt.Errorf("%w: user %s cannot view budget %s", engine.ErrAccessDenied, userID, budgetID)
	}

	rows, err := s.lister.ListByBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	result := make([]Account, len(rows))
	for i, row := range rows {
		result[i] = engineAccountToAccount(row)
	}
	return result, nil
}
