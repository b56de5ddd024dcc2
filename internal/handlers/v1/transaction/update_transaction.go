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

// UpdateTransactionBody is the request body for updating a transaction.
// Every mutable field is replaced wholesale.
type UpdateTransactionBody struct {
	AccountID   string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID, may differ from the original"`
	CategoryID  string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Kind        string `json:"kind" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction kind"`
	Amount      string `json:"amount" required:"true" doc:"Non-negative decimal amount"`
	Currency    string `json:"currency" doc:"Transaction currency, defaults to the base currency"`
	Description string `json:"description" minLength:"1" required:"true" doc:"Description of the transaction"`
	Date        string `json:"date,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to the original's"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller user UUID"`
	ID     string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body   UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Status int
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, in service.UpdateTransactionInput) error
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction, reversing the original's balance effect and applying the new one atomically.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.UpdateTransactionInput, error) {
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return service.UpdateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.UpdateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var date time.Time
	if input.Body.Date != "" {
		date, err = time.Parse(time.RFC3339, input.Body.Date)
		if err != nil {
			return service.UpdateTransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	return service.UpdateTransactionInput{
		UserID:      userID,
		ID:          uuid.FromStringOrNil(input.ID),
		AccountID:   uuid.FromStringOrNil(input.Body.AccountID),
		CategoryID:  uuid.FromStringOrNil(input.Body.CategoryID),
		Kind:        input.Body.Kind,
		Amount:      amount,
		Currency:    input.Body.Currency,
		Description: input.Body.Description,
		Date:        date,
	}, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	in, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransactionMs")
	}
	err = h.TransactionService.UpdateTransaction(ctx, in)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromDomain(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Status: http.StatusNoContent}, nil
}
