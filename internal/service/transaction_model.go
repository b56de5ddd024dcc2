package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/engine"
)

// Transaction represents a transaction in the service layer. Kind is
// the wire name (INCOME or EXPENSE).
type Transaction struct {
	ID          uuid.UUID
	BudgetID    uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	TemplateID  *uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// CreateTransactionInput is the input for creating a transaction.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	BudgetID    uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Date        time.Time
}

// UpdateTransactionInput is the input for updating a transaction. Every
// mutable field is replaced wholesale.
type UpdateTransactionInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Kind        string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Date        time.Time
}

// TransactionFilter narrows a listing to one account and pages through
// results.
type TransactionFilter struct {
	AccountID *uuid.UUID
	Limit     int
	Offset    int
}

func engineTransactionToTransaction(tx *engine.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		BudgetID:    tx.BudgetID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		TemplateID:  tx.TemplateID,
		Kind:        tx.Kind.String(),
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Description: tx.Description,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}
