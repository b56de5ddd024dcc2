package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-engine/internal/access"
	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/storage/transaction"
)

func newTransactionTestService(role string) (*TransactionService, *mockProcessor, *mockTransactionFinder, *mockTransactionLister) {
	processor := &mockProcessor{}
	finder := &mockTransactionFinder{}
	lister := &mockTransactionLister{}
	svc := NewTransactionService(processor, finder, lister, NewAccessService(ownerRoleFinder(role)))
	return svc, processor, finder, lister
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, processor, _, _ := newTransactionTestService("owner")

	userID := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("42.50")
	txDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expectedID := uuid.Must(uuid.NewV4())

	processor.On("Create", mock.Anything, mock.MatchedBy(func(c engine.Caller) bool {
		return c.UserID == userID && c.Access == access.ForRole(access.RoleOwner)
	}), mock.MatchedBy(func(tx engine.Transaction) bool {
		return tx.BudgetID == budgetID &&
			tx.AccountID == accountID &&
			tx.Kind == engine.KindExpense &&
			tx.Amount.Equal(amount) &&
			tx.Description == "Groceries" &&
			tx.Date.Equal(txDate)
	})).Return(expectedID, nil)

	id, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      userID,
		BudgetID:    budgetID,
		AccountID:   accountID,
		CategoryID:  uuid.Must(uuid.NewV4()),
		Kind:        "EXPENSE",
		Amount:      amount,
		Currency:    "UAH",
		Description: "Groceries",
		Date:        txDate,
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestCreateTransaction_UnknownKind(t *testing.T) {
	svc, processor, _, _ := newTransactionTestService("owner")

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:   uuid.Must(uuid.NewV4()),
		BudgetID: uuid.Must(uuid.NewV4()),
		Kind:     "TRANSFER",
		Amount:   decimal.RequireFromString("10.00"),
	})

	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	processor.AssertNotCalled(t, "Create")
}

func TestCreateTransaction_DefaultsDateToNow(t *testing.T) {
	svc, processor, _, _ := newTransactionTestService("owner")

	processor.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(tx engine.Transaction) bool {
		return !tx.Date.IsZero()
	})).Return(uuid.Must(uuid.NewV4()), nil)

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:   uuid.Must(uuid.NewV4()),
		BudgetID: uuid.Must(uuid.NewV4()),
		Kind:     "INCOME",
		Amount:   decimal.RequireFromString("10.00"),
	})

	assert.NoError(t, err)
}

// -- UpdateTransaction tests --

func TestUpdateTransaction_BuildsReversalFromOriginal(t *testing.T) {
	svc, processor, finder, _ := newTransactionTestService("owner")

	id := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())
	originalAccount := uuid.Must(uuid.NewV4())
	newAccount := uuid.Must(uuid.NewV4())

	finder.On("FindTransaction", mock.Anything, id).Return(&engine.Transaction{
		ID:        id,
		BudgetID:  budgetID,
		AccountID: originalAccount,
		Kind:      engine.KindIncome,
		Amount:    decimal.RequireFromString("75.00"),
		Date:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	processor.On("Update", mock.Anything, mock.Anything, mock.MatchedBy(func(r engine.Reversal) bool {
		return r.AccountID == originalAccount &&
			r.Kind == engine.KindIncome &&
			r.Amount.Equal(decimal.RequireFromString("75.00"))
	}), mock.MatchedBy(func(tx engine.Transaction) bool {
		return tx.ID == id &&
			tx.BudgetID == budgetID &&
			tx.AccountID == newAccount &&
			tx.Kind == engine.KindExpense
	})).Return(nil)

	err := svc.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID:    uuid.Must(uuid.NewV4()),
		ID:        id,
		AccountID: newAccount,
		Kind:      "EXPENSE",
		Amount:    decimal.RequireFromString("80.00"),
		Currency:  "UAH",
	})

	assert.NoError(t, err)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc, processor, finder, _ := newTransactionTestService("owner")

	finder.On("FindTransaction", mock.Anything, mock.Anything).Return(nil, nil)

	err := svc.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
		Kind:   "EXPENSE",
		Amount: decimal.RequireFromString("10.00"),
	})

	assert.ErrorIs(t, err, engine.ErrNotFound)
	processor.AssertNotCalled(t, "Update")
}

func TestUpdateTransaction_FinderFailure(t *testing.T) {
	svc, _, finder, _ := newTransactionTestService("owner")

	finder.On("FindTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	err := svc.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
		Kind:   "EXPENSE",
		Amount: decimal.RequireFromString("10.00"),
	})

	assert.ErrorIs(t, err, engine.ErrStorage)
}

// -- DeleteTransaction tests --

func TestDeleteTransaction_PassesResolvedCaller(t *testing.T) {
	svc, processor, _, _ := newTransactionTestService("editor")

	userID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	processor.On("Delete", mock.Anything, mock.MatchedBy(func(c engine.Caller) bool {
		return c.UserID == userID && c.Access.CanEdit() && !c.Access.IsOwner()
	}), id).Return(nil)

	err := svc.DeleteTransaction(context.Background(), userID, uuid.Must(uuid.NewV4()), id)

	assert.NoError(t, err)
}

// -- ListTransactions tests --

func TestListTransactions_RequiresViewAccess(t *testing.T) {
	svc, _, _, lister := newTransactionTestService("stranger")

	_, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), nil)

	assert.ErrorIs(t, err, engine.ErrAccessDenied)
	lister.AssertNotCalled(t, "ListByBudget")
}

func TestListTransactions_ViewerCanList(t *testing.T) {
	svc, _, _, lister := newTransactionTestService("viewer")

	budgetID := uuid.Must(uuid.NewV4())
	rows := []*engine.Transaction{
		{
			ID:          uuid.Must(uuid.NewV4()),
			BudgetID:    budgetID,
			Kind:        engine.KindExpense,
			Amount:      decimal.RequireFromString("5.00"),
			Description: "Coffee",
		},
	}
	lister.On("ListByBudget", mock.Anything, budgetID, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.AccountID == nil
	})).Return(rows, nil)

	txs, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), budgetID, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 1)
	assert.Equal(t, "EXPENSE", txs[0].Kind)
	assert.Equal(t, "Coffee", txs[0].Description)
}

func TestListTransactions_FilterPassedThrough(t *testing.T) {
	svc, _, _, lister := newTransactionTestService("owner")

	accountID := uuid.Must(uuid.NewV4())
	lister.On("ListByBudget", mock.Anything, mock.Anything, mock.MatchedBy(func(f *transaction.Filter) bool {
		return f.AccountID != nil && *f.AccountID == accountID && f.Limit == 5 && f.Offset == 10
	})).Return([]*engine.Transaction{}, nil)

	_, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), &TransactionFilter{
		AccountID: &accountID,
		Limit:     5,
		Offset:    10,
	})

	assert.NoError(t, err)
}
