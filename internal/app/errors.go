package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-booking-service/internal/booking"
	appvalidator "github.com/metinatakli/movie-booking-service/internal/validator"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The requested method is not supported for this resource"
	ErrValidation       = "Validation failed"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeError(w, r, status, ErrorResponse{Message: message})
}

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, resp ErrorResponse) {
	resp.RequestId = middleware.GetReqID(r.Context())
	resp.Timestamp = time.Now()

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ValidationErrorResponse{
		Message:          ErrValidation,
		ValidationErrors: make([]ValidationError, len(validationErrs)),
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
	}

	for i, fe := range validationErrs {
		resp.ValidationErrors[i] = ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		}
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse translates booking service errors. Server errors carry the underlying
// failure in the error field.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var bErr *booking.Error
	if !errors.As(err, &bErr) {
		app.serverErrorResponse(w, r, err)
		return
	}

	switch bErr.Kind {
	case booking.KindValidation:
		app.errorResponse(w, r, http.StatusBadRequest, bErr.Message)
	case booking.KindNotFound:
		app.errorResponse(w, r, http.StatusNotFound, bErr.Message)
	default:
		app.logError(r, err)

		resp := ErrorResponse{Message: bErr.Message}
		if bErr.Err != nil {
			resp.Error = bErr.Err.Error()
		}

		app.writeError(w, r, http.StatusInternalServerError, resp)
	}
}
