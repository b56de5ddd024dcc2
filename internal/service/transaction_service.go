package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionFinder reads committed transactions outside a unit of
// work.
//
//go:generate mockery --name TransactionFinder --output mock_TransactionFinder.go
type TransactionFinder interface {
	FindTransaction(ctx context.Context, id uuid.UUID) (*engine.Transaction, error)
}

// TransactionLister pages through a budget's transactions.
//
//go:generate mockery --name TransactionLister --output mock_TransactionLister.go
type TransactionLister interface {
	ListByBudget(ctx context.Context, budgetID uuid.UUID, filter *transaction.Filter) ([]*engine.Transaction, error)
}

// TransactionService handles transaction business logic. All mutations
// go through the processor chain; the service never touches balances
// itself.
type TransactionService struct {
	processor engine.Processor
	finder    TransactionFinder
	lister    TransactionLister
	access    *AccessService
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(processor engine.Processor, finder TransactionFinder, lister TransactionLister, access *AccessService) *TransactionService {
	return &TransactionService{
		processor: processor,
		finder:    finder,
		lister:    lister,
		access:    access,
	}
}

// CreateTransaction creates a new transaction and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (uuid.UUID, error) {
	kind, err := engine.ParseKind(in.Kind)
	if err != nil {
		return uuid.Nil, err
	}

	caller, err := s.access.Caller(ctx, in.BudgetID, in.UserID)
	if err != nil {
		return uuid.Nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	return s.processor.Create(ctx, caller, engine.Transaction{
		BudgetID:    in.BudgetID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Kind:        kind,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
		Date:        date,
	})
}

// UpdateTransaction replaces a committed transaction. The original is
// loaded first so its balance effect can be reversed exactly as it was
// applied.
func (s *TransactionService) UpdateTransaction(ctx context.Context, in UpdateTransactionInput) error {
	kind, err := engine.ParseKind(in.Kind)
	if err != nil {
		return err
	}

	original, err := s.finder.FindTransaction(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrStorage, err)
	}
	if original == nil {
		return fmt.Errorf("%w: transaction %s", engine.ErrNotFound, in.ID)
	}

	caller, err := s.access.Caller(ctx, original.BudgetID, in.UserID)
	if err != nil {
		return err
	}

	date := in.Date
	if date.IsZero() {
		date = original.Date
	}

	reversal := engine.Reversal{
		AccountID: original.AccountID,
		Kind:      original.Kind,
		Amount:    original.Amount,
	}
	return s.processor.Update(ctx, caller, reversal, engine.Transaction{
		ID:          in.ID,
		BudgetID:    original.BudgetID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		TemplateID:  original.TemplateID,
		Kind:        kind,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
		Date:        date,
	})
}

// DeleteTransaction removes a transaction. Deleting an absent id is
// not an error.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, budgetID, id uuid.UUID) error {
	caller, err := s.access.Caller(ctx, budgetID, userID)
	if err != nil {
		return err
	}
	return s.processor.Delete(ctx, caller, id)
}

// ListTransactions returns a page of the budget's transactions, newest
// first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID, budgetID uuid.UUID, filter *TransactionFilter) ([]Transaction, error) {
	caller, err := s.access.Caller(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}
	if !caller.Access.View {
		return nil, fmt.Errorf("%w: user %s cannot view budget %s", engine.ErrAccessDenied, userID, budgetID)
	}

	storageFilter := &transaction.Filter{Limit: defaultLimit}
	if filter != nil {
		storageFilter.AccountID = filter.AccountID
		if filter.Limit > 0 {
			storageFilter.Limit = filter.Limit
		}
		storageFilter.Offset = filter.Offset
	}

	rows, err := s.lister.ListByBudget(ctx, budgetID, storageFilter)
	if err != nil {
		return nil, err
	}

	result := make([]Transaction, len(rows))
	for i, row := range rows {
		result[i] = engineTransactionToTransaction(row)
	}
	return result, nil
}
