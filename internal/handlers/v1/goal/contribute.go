package goal

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

// ContributeBody is the request body for funding a goal.
type ContributeBody struct {
	BudgetID  string `json:"budgetID" required:"true" format:"uuid" doc:"Budget UUID"`
	AccountID string `json:"accountID" required:"true" format:"uuid" doc:"Source account UUID"`
	Amount    string `json:"amount" required:"true" doc:"Positive decimal amount to move into the goal"`
}

// ContributeInput is the Huma input for funding a goal.
type ContributeInput struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller user UUID"`
	GoalID string `path:"id" format:"uuid" doc:"Goal UUID"`
	Body   ContributeBody
}

// ContributeResponse is the response body for funding a goal.
type ContributeResponse struct {
	TransactionID string `json:"transactionID" doc:"UUID of the expense transaction booked against the source account"`
}

// ContributeOutput is the Huma output for funding a goal.
type ContributeOutput struct {
	Status int
	Body   ContributeResponse
}

// goalContributor is the interface for funding goals.
type goalContributor interface {
	Contribute(ctx context.Context, in service.ContributeInput) (uuid.UUID, error)
}

// ContributeHandler handles POST /v1/goal/{id}/contribute.
type ContributeHandler struct {
	GoalService goalContributor
}

// NewContributeHandler creates a new ContributeHandler.
func NewContributeHandler(svc goalContributor) *ContributeHandler {
	return &ContributeHandler{GoalService: svc}
}

// Register registers the contribute endpoint with the Huma API.
func (h *ContributeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "contribute-to-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal/{id}/contribute",
		Summary:     "Contribute to a goal",
		Description: "Books an expense against the source account and raises the goal's accumulated amount atomically.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *ContributeHandler) handle(ctx context.Context, input *ContributeInput) (*ContributeOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("contributeMs")
	}
	txID, err := h.GoalService.Contribute(ctx, service.ContributeInput{
		UserID:    userID,
		BudgetID:  uuid.FromStringOrNil(input.Body.BudgetID),
		AccountID: uuid.FromStringOrNil(input.Body.AccountID),
		GoalID:    uuid.FromStringOrNil(input.GoalID),
		Amount:    amount,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromDomain(err, "failed to contribute to goal")
	}

	return &ContributeOutput{
		Status: http.StatusCreated,
		Body:   ContributeResponse{TransactionID: txID.String()},
	}, nil
}
