package template

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

// CreateTemplateBody is the request body for creating a recurrence
// template.
type CreateTemplateBody struct {
	BudgetID   string `json:"budgetID" required:"true" format:"uuid" doc:"Budget UUID"`
	AccountID  string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID the occurrences book against"`
	CategoryID string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Name       string `json:"name" minLength:"1" required:"true" doc:"Template name, used as the transaction description"`
	Kind       string `json:"kind" required:"true" enum:"INCOME,EXPENSE" doc:"Transaction kind"`
	Amount     string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Currency   string `json:"currency" doc:"Currency, defaults to the base currency"`
	Recurrence string `json:"recurrence" required:"true" enum:"NONE,DAILY,WEEKLY,MONTHLY,YEARLY" doc:"How often the template materializes"`
	Interval   int    `json:"interval,omitempty" minimum:"1" doc:"Every N periods, defaults to 1"`
	DayOfMonth *int   `json:"dayOfMonth,omitempty" minimum:"1" maximum:"31" doc:"Anchor day for MONTHLY/YEARLY rules, clamped to month length"`
	Weekday    *int   `json:"weekday,omitempty" minimum:"0" maximum:"6" doc:"Anchor weekday for WEEKLY rules, 0=Sunday"`
	StartDate  string `json:"startDate" required:"true" format:"date" doc:"First eligible date"`
}

// CreateTemplateInput is the Huma input for creating a template.
type CreateTemplateInput struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"Caller user UUID"`
	Body   CreateTemplateBody
}

// CreateTemplateResponse is the response body for creating a template.
type CreateTemplateResponse struct {
	ID string `json:"id" doc:"Created template UUID"`
}

// CreateTemplateOutput is the Huma output for creating a template.
type CreateTemplateOutput struct {
	Status int
	Body   CreateTemplateResponse
}

// templateCreator is the interface for creating templates.
type templateCreator interface {
	CreateTemplate(ctx context.Context, in service.CreateTemplateInput) (uuid.UUID, error)
}

// CreateTemplateHandler handles POST /v1/template.
type CreateTemplateHandler struct {
	TemplateService templateCreator
}

// NewCreateTemplateHandler creates a new CreateTemplateHandler.
func NewCreateTemplateHandler(svc templateCreator) *CreateTemplateHandler {
	return &CreateTemplateHandler{TemplateService: svc}
}

// Register registers the create template endpoint with the Huma API.
func (h *CreateTemplateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-template",
		Method:      http.MethodPost,
		Path:        "/v1/template",
		Summary:     "Create recurrence template",
		Description: "Stores a recurrence rule. The next scheduler run materializes any due occurrences.",
		Tags:        []string{"Templates"},
	}, h.handle)
}

func parseCreateTemplateInput(input *CreateTemplateInput) (service.CreateTemplateInput, error) {
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return service.CreateTemplateInput{}, huma.NewError(http.StatusBadRequest, "invalid X-User-ID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.CreateTemplateInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	startDate, err := time.Parse(time.DateOnly, input.Body.StartDate)
	if err != nil {
		return service.CreateTemplateInput{}, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}

	interval := input.Body.Interval
	if interval == 0 {
		interval = 1
	}

	var weekday *time.Weekday
	if input.Body.Weekday != nil {
		day := time.Weekday(*input.Body.Weekday)
		weekday = &day
	}

	return service.CreateTemplateInput{
		UserID:     userID,
		BudgetID:   uuid.FromStringOrNil(input.Body.BudgetID),
		AccountID:  uuid.FromStringOrNil(input.Body.AccountID),
		CategoryID: uuid.FromStringOrNil(input.Body.CategoryID),
		Name:       input.Body.Name,
		Kind:       input.Body.Kind,
		Amount:     amount,
		Currency:   input.Body.Currency,
		Recurrence: input.Body.Recurrence,
		Interval:   interval,
		DayOfMonth: input.Body.DayOfMonth,
		Weekday:    weekday,
		StartDate:  startDate,
	}, nil
}

func (h *CreateTemplateHandler) handle(ctx context.Context, input *CreateTemplateInput) (*CreateTemplateOutput, error) {
	logData := logging.GetLogData(ctx)

	in, err := parseCreateTemplateInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTemplateMs")
	}
	id, err := h.TemplateService.CreateTemplate(ctx, in)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromDomain(err, "failed to create template")
	}

	return &CreateTemplateOutput{
		Status: http.StatusCreated,
		Body:   CreateTemplateResponse{ID: id.String()},
	}, nil
}
