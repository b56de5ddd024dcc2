package account

import (
	"github.com/carson-networks/budget-engine/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID       string `json:"id" doc:"Account UUID"`
	BudgetID string `json:"budgetID" doc:"Budget UUID"`
	OwnerID  string `json:"ownerID" doc:"Owning user UUID"`
	Name     string `json:"name" doc:"Account name"`
	Currency string `json:"currency" doc:"Account currency"`
	Balance  string `json:"balance" doc:"Decimal balance"`
	Shared   bool   `json:"shared" doc:"Whether budget members other than the owner may book transactions"`
}

func serviceAccountToAccount(a service.Account) Account {
	return Account{
		ID:       a.ID.String(),
		BudgetID: a.BudgetID.String(),
		OwnerID:  a.OwnerID.String(),
		Name:     a.Name,
		Currency: a.Currency,
		Balance:  a.Balance.String(),
		Shared:   a.Shared,
	}
}
