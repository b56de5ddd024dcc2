package template

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-engine/internal/handlers/v1/apierror"
	"github.com/carson-networks/budget-engine/internal/logging"
)

// RunTemplatesInput is the Huma input for running the caller's
// recurring templates.
type RunTemplatesInput struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller user UUID"`
}

// RunTemplatesOutput is the Huma output for running templates.
type RunTemplatesOutput struct {
	Status int
}

// templateRunner is the interface for catching up recurring templates.
type templateRunner interface {
	RunForUser(ctx context.Context, userID uuid.UUID) error
}

// RunTemplatesHandler handles POST /v1/template/run. Clients call it at
// login so missed occurrences are booked before the user sees their
// balances.
type RunTemplatesHandler struct {
	SchedulerService templateRunner
}

// NewRunTemplatesHandler creates a new RunTemplatesHandler.
func NewRunTemplatesHandler(svc templateRunner) *RunTemplatesHandler {
	return &RunTemplatesHandler{SchedulerService: svc}
}

// Register registers the run templates endpoint with the Huma API.
func (h *RunTemplatesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "run-templates",
		Method:      http.MethodPost,
		Path:        "/v1/template/run",
		Summary:     "Run recurring templates",
		Description: "Materializes every due occurrence of the caller's recurring templates.",
		Tags:        []string{"Templates"},
	}, h.handle)
}

func (h *RunTemplatesHandler) handle(ctx context.Context, input *RunTemplatesInput) (*RunTemplatesOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("runTemplatesMs")
	}
	err = h.SchedulerService.RunForUser(ctx, userID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromDomain(err, "failed to run templates")
	}

	return &RunTemplatesOutput{Status: http.StatusNoContent}, nil
}
