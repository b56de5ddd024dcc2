package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/schedule"
	"github.com/carson-networks/budget-engine/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Create(ctx context.Context, caller engine.Caller, tx engine.Transaction) (uuid.UUID, error) {
	args := m.Called(ctx, caller, tx)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockProcessor) Update(ctx context.Context, caller engine.Caller, original engine.Reversal, updated engine.Transaction) error {
	args := m.Called(ctx, caller, original, updated)
	return args.Error(0)
}

func (m *mockProcessor) Delete(ctx context.Context, caller engine.Caller, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *mockProcessor) TransferToGoal(ctx context.Context, caller engine.Caller, accountID, goalID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	args := m.Called(ctx, caller, accountID, goalID, amount)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockRoleFinder struct {
	mock.Mock
}

func (m *mockRoleFinder) FindRole(ctx context.Context, budgetID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, budgetID, userID)
	return args.String(0), args.Error(1)
}

type mockTransactionFinder struct {
	mock.Mock
}

func (m *mockTransactionFinder) FindTransaction(ctx context.Context, id uuid.UUID) (*engine.Transaction, error) {
	args := m.Called(ctx, id)
	if tx, ok := args.Get(0).(*engine.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTransactionLister struct {
	mock.Mock
}

func (m *mockTransactionLister) ListByBudget(ctx context.Context, budgetID uuid.UUID, filter *transaction.Filter) ([]*engine.Transaction, error) {
	args := m.Called(ctx, budgetID, filter)
	if rows, ok := args.Get(0).([]*engine.Transaction); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAccountCreator struct {
	mock.Mock
}

func (m *mockAccountCreator) CreateAccount(ctx context.Context, a *engine.Account) (uuid.UUID, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockAccountLister struct {
	mock.Mock
}

func (m *mockAccountLister) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]*engine.Account, error) {
	args := m.Called(ctx, budgetID)
	if rows, ok := args.Get(0).([]*engine.Account); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTemplateCreator struct {
	mock.Mock
}

func (m *mockTemplateCreator) CreateTemplate(ctx context.Context, tpl *schedule.Template) (uuid.UUID, error) {
	args := m.Called(ctx, tpl)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func ownerRoleFinder(role string) *mockRoleFinder {
	roles := &mockRoleFinder{}
	roles.On("FindRole", mock.Anything, mock.Anything, mock.Anything).Return(role, nil)
	return roles
}
