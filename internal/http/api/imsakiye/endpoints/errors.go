package endpoints

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/calendar"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/export"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/fontsettings"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/gateway"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/http/api"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/location"
	"github.com/Nixie-Tech-LLC/imsakiye/internal/session"
)

// apiError maps domain errors onto HTTP statuses. The message is shown to
// the user as is.
func apiError(err error) *api.APIError {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, location.ErrIncompleteSelection),
		errors.Is(err, fontsettings.ErrInvalidValue),
		errors.Is(err, session.ErrCellRange):
		code = http.StatusBadRequest
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, export.ErrInProgress),
		errors.Is(err, export.ErrNoSelection),
		errors.Is(err, session.ErrNoCalendar):
		code = http.StatusConflict
	case errors.Is(err, location.ErrNoStates),
		errors.Is(err, calendar.ErrNoData),
		errors.Is(err, session.ErrNoExport),
		errors.Is(err, fs.ErrNotExist):
		code = http.StatusNotFound
	case errors.Is(err, gateway.ErrStatus):
		code = http.StatusBadGateway
	}
	return &api.APIError{Code: code, Message: err.Error(), Err: err}
}

func badRequest(err error) *api.APIError {
	return &api.APIError{Code: http.StatusBadRequest, Message: err.Error(), Err: err}
}
