package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-engine/internal/engine"
	"github.com/carson-networks/budget-engine/internal/schedule"
)

// FromDomain maps domain sentinel errors to Huma status errors so
// every handler reports the taxonomy the same way.
func FromDomain(err error, message string) huma.StatusError {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return huma.NewError(http.StatusNotFound, message, err)
	case errors.Is(err, engine.ErrAccessDenied):
		return huma.NewError(http.StatusForbidden, message, err)
	case errors.Is(err, engine.ErrInsufficientFunds):
		return huma.NewError(http.StatusUnprocessableEntity, message, err)
	case errors.Is(err, engine.ErrInvalidInput):
		return huma.NewError(http.StatusBadRequest, message, err)
	case errors.Is(err, schedule.ErrInvalidRule):
		return huma.NewError(http.StatusUnprocessableEntity, message, err)
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}
