package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-engine/internal/engine"
)

func newAccountTestService(role string) (*AccountService, *mockAccountCreator, *mockAccountLister) {
	creator := &mockAccountCreator{}
	lister := &mockAccountLister{}
	svc := NewAccountService(creator, lister, NewAccessService(ownerRoleFinder(role)))
	return svc, creator, lister
}

func TestCreateAccount_Success(t *testing.T) {
	svc, creator, _ := newAccountTestService("owner")

	userID := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())
	expectedID := uuid.Must(uuid.NewV4())

	creator.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *engine.Account) bool {
		return a.BudgetID == budgetID &&
			a.OwnerID == userID &&
			a.Name == "Checking" &&
			a.Currency == "UAH" &&
			a.Balance.Equal(decimal.RequireFromString("250.00")) &&
			a.Shared
	})).Return(expectedID, nil)

	id, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID:          userID,
		BudgetID:        budgetID,
		Name:            "Checking",
		Currency:        "UAH",
		StartingBalance: decimal.RequireFromString("250.00"),
		Shared:          true,
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestCreateAccount_ViewerDenied(t *testing.T) {
	svc, creator, _ := newAccountTestService("viewer")

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID:   uuid.Must(uuid.NewV4()),
		BudgetID: uuid.Must(uuid.NewV4()),
		Name:     "Checking",
	})

	assert.ErrorIs(t, err, engine.ErrAccessDenied)
	creator.AssertNotCalled(t, "CreateAccount")
}

func TestCreateAccount_NameRequired(t *testing.T) {
	svc, creator, _ := newAccountTestService("owner")

	_, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		UserID:   uuid.Must(uuid.NewV4()),
		BudgetID: uuid.Must(uuid.NewV4()),
	})

	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	creator.AssertNotCalled(t, "CreateAccount")
}

func TestListAccounts_ViewerCanList(t *testing.T) {
	svc, _, lister := newAccountTestService("viewer")

	budgetID := uuid.Must(uuid.NewV4())
	lister.On("ListByBudget", mock.Anything, budgetID).Return([]*engine.Account{
		{
			ID:       uuid.Must(uuid.NewV4()),
			BudgetID: budgetID,
			Name:     "Checking",
			Balance:  decimal.RequireFromString("100.00"),
		},
	}, nil)

	accounts, err := svc.ListAccounts(context.Background(), uuid.Must(uuid.NewV4()), budgetID)

	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, "Checking", accounts[0].Name)
}

func TestListAccounts_StrangerDenied(t *testing.T) {
	svc, _, lister := newAccountTestService("")

	_, err := svc.ListAccounts(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, engine.ErrAccessDenied)
	lister.AssertNotCalled(t, "ListByBudget")
}
