package account

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/service"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, in service.CreateAccountInput) (uuid.UUID, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountService) ListAccounts(ctx context.Context, userID, budgetID uuid.UUID) ([]service.Account, error) {
	args := m.Called(ctx, userID, budgetID)
	if rows, ok := args.Get(0).([]service.Account); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func newAccountTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	NewListAccountsHandler(svc).Register(api)
	return api
}

func userHeader(userID uuid.UUID) string {
	return "X-User-ID: " + userID.String()
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(in service.CreateAccountInput) bool {
		return in.UserID == userID &&
			in.BudgetID == budgetID &&
			in.Name == "Checking" &&
			in.StartingBalance.Equal(decimal.RequireFromString("100.00")) &&
			in.Shared
	})).Return(accountID, nil)

	resp := newAccountTestAPI(t, mockSvc).Post("/v1/account", userHeader(userID), CreateAccountBody{
		BudgetID:        budgetID.String(),
		Name:            "Checking",
		Currency:        "UAH",
		StartingBalance: "100.00",
		Shared:          true,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateAccountResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, accountID.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_DefaultStartingBalance(t *testing.T) {
	mockSvc := new(mockAccountService)
	mockSvc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(in service.CreateAccountInput) bool {
		return in.StartingBalance.IsZero()
	})).Return(uuid.Must(uuid.NewV4()), nil)

	resp := newAccountTestAPI(t, mockSvc).Post("/v1/account", userHeader(uuid.Must(uuid.NewV4())), CreateAccountBody{
		BudgetID: uuid.Must(uuid.NewV4()).String(),
		Name:     "Wallet",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestHTTP_CreateAccount_InvalidStartingBalance(t *testing.T) {
	mockSvc := new(mockAccountService)

	resp := newAccountTestAPI(t, mockSvc).Post("/v1/account", userHeader(uuid.Must(uuid.NewV4())), CreateAccountBody{
		BudgetID:        uuid.Must(uuid.NewV4()).String(),
		Name:            "Wallet",
		StartingBalance: "lots",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_AccessDenied(t *testing.T) {
	mockSvc := new(mockAccountService)
	mockSvc.On("CreateAccount", mock.Anything, mock.Anything).
		Return(uuid.Nil, engine.ErrAccessDenied)

	resp := newAccountTestAPI(t, mockSvc).Post("/v1/account", userHeader(uuid.Must(uuid.NewV4())), CreateAccountBody{
		BudgetID: uuid.Must(uuid.NewV4()).String(),
		Name:     "Wallet",
	})

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestHTTP_ListAccounts_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("ListAccounts", mock.Anything, userID, budgetID).Return([]service.Account{
		{
			ID:       uuid.Must(uuid.NewV4()),
			BudgetID: budgetID,
			OwnerID:  userID,
			Name:     "Checking",
			Currency: "UAH",
			Balance:  decimal.RequireFromString("250.00"),
		},
	}, nil)

	resp := newAccountTestAPI(t, mockSvc).Get("/v1/accounts?budgetID="+budgetID.String(), userHeader(userID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListAccountsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Accounts, 1)
	assert.Equal(t, "Checking", body.Accounts[0].Name)
	assert.Equal(t, "250", body.Accounts[0].Balance)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListAccounts_AccessDenied(t *testing.T) {
	mockSvc := new(mockAccountService)
	mockSvc.On("ListAccounts", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, engine.ErrAccessDenied)

	resp := newAccountTestAPI(t, mockSvc).Get(
		"/v1/accounts?budgetID="+uuid.Must(uuid.NewV4()).String(),
		userHeader(uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
