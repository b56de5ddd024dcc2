package transaction

import (
	"time"

	"github.com/carson-networks/budget-engine/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	BudgetID    string `json:"budgetID" doc:"Budget UUID"`
	AccountID   string `json:"accountID" doc:"Account UUID"`
	CategoryID  string `json:"categoryID" doc:"Category UUID"`
	TemplateID  string `json:"templateID,omitempty" doc:"Recurrence template UUID when the scheduler created this transaction"`
	Kind        string `json:"kind" doc:"INCOME or EXPENSE"`
	Amount      string `json:"amount" doc:"Decimal amount in the budget's base currency"`
	Currency    string `json:"currency" doc:"Currency the transaction was booked in"`
	Description string `json:"description" doc:"Description of the transaction"`
	Date        string `json:"date" doc:"RFC3339 transaction date"`
	CreatedAt   string `json:"createdAt" doc:"RFC3339 creation time"`
}

func serviceTransactionToTransaction(tx service.Transaction) Transaction {
	out := Transaction{
		ID:          tx.ID.String(),
		BudgetID:    tx.BudgetID.String(),
		AccountID:   tx.AccountID.String(),
		CategoryID:  tx.CategoryID.String(),
		Kind:        tx.Kind,
		Amount:      tx.Amount.String(),
		Currency:    tx.Currency,
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.TemplateID != nil {
		out.TemplateID = tx.TemplateID.String()
	}
	return out
}
