package service

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

// Account represents an account in the service layer.
type Account struct {
	ID       uuid.UUID
	BudgetID uuid.UUID
	OwnerID  uuid.UUID
	Name     string
	Currency string
	Balance  decimal.Decimal
	Shared   bool
}

// CreateAccountInput is the input for creating an account. The caller
// becomes the owner.
type CreateAccountInput struct {
	UserID          uuid.UUID
	BudgetID        uuid.UUID
	Name            string
	Currency        string
	StartingBalance decimal.Decimal
	Shared          bool
}

func engineAccountToAccount(a *engine.Account) Account {
	return Account{
		ID:       a.ID,
		BudgetID: a.BudgetID,
		OwnerID:  a.OwnerID,
		Name:     a.Name,
		Currency: a.Currency,
		Balance:  a.Balance,
		Shared:   a.Shared,
	}
}
