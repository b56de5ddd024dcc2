package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-engine/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-engine/internal/logging"
	"github.com/carson-networks/budget-engine/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	BudgetID    string `json:"budgetID" required:"true" format:"uuid" doc:"Budget UUID"`
	AccountID   string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	CategoryID  string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Kind        string `json:"kind" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction kind"`
	Amount      string `json:"amount" required:"true" doc:"Non-negative decimal amount"`
	Currency    string `json:"currency" doc:"Transaction currency, defaults to the base currency"`
	Description string `json:"description" minLength:"1" required:"true" doc:"Description of the transaction"`
	Date        string `json:"date,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller user UUID"`
	Body   CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, in service.CreateTransactionInput) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a new transaction and applies its balance effect atomically.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput parses the fields Huma's schema tags do
// not cover.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.CreateTransactionInput, error) {
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var date time.Time
	if input.Body.Date != "" {
		date, err = time.Parse(time.RFC3339, input.Body.Date)
		if err != nil {
			return service.CreateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	return service.CreateTransactionInput{
		UserID:      userID,
		BudgetID:    uuid.FromStringOrNil(input.Body.BudgetID),
		AccountID:   uuid.FromStringOrNil(input.Body.AccountID),
		CategoryID:  uuid.FromStringOrNil(input.Body.CategoryID),
		Kind:        input.Body.Kind,
		Amount:      amount,
		Currency:    input.Body.Currency,
		Description: input.Body.Description,
		Date:        date,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	in, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, in)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromDomain(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
