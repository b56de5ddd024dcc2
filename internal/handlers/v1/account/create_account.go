package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-engine/internal/logging"
	"github.com/carson-networks/budget-engine/internal/service"
)

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	BudgetID        string `json:"budgetID" required:"true" format:"uuid" doc:"Budget UUID"`
	Name            string `json:"name" minLength:"1" required:"true" doc:"Account name"`
	Currency        string `json:"currency" doc:"Account currency, defaults to the base currency"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
	Shared          bool   `json:"shared" doc:"Whether budget members other than the owner may book transactions"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller user UUID"`
	Body   CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, in service.CreateAccountInput) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account owned by the caller.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.CreateAccountInput, error) {
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return service.CreateAccountInput{}, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}

	startingBalanceStr := input.Body.StartingBalance
	if startingBalanceStr == "" {
		startingBalanceStr = "0"
	}
	startingBalance, err := decimal.NewFromString(startingBalanceStr)
	if err != nil {
		return service.CreateAccountInput{}, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
	}

	return service.CreateAccountInput{
		UserID:          userID,
		BudgetID:        uuid.FromStringOrNil(input.Body.BudgetID),
		Name:            input.Body.Name,
		Currency:        input.Body.Currency,
		StartingBalance: startingBalance,
		Shared:          input.Body.Shared,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	in, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.CreateAccount(ctx, in)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromDomain(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: id.String()},
	}, nil
}
