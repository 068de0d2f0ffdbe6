package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/payload"
	"github.com/rpupo63/devtracker-backend/sqlbuild"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus marshals data first so a failure can still become a 500.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")

		status = http.StatusInternalServerError
		jsonData, _ = json.Marshal(ErrorResponse{
			Error:  "Response too large",
			Status: "error",
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError renders err as an ErrorResponse. ApiErr values keep their status
// and message; anything else is logged and hidden behind a generic 500.
func (r Responder) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().
			Err(err).
			Str("request_id", ctxGetRequestID(req.Context())).
			Str("path", req.URL.Path).
			Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal server error.",
			Status: "error",
		})
		return
	}

	event := r.logger.Debug()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		event = r.logger.Error()
	}
	event.
		Int("status", apiErr.StatusCode).
		Str("request_id", ctxGetRequestID(req.Context())).
		Str("path", req.URL.Path).
		Str("error", apiErr.GetFullError()).
		Msg("request failed")

	r.WriteJSONStatus(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

// wrapDatabaseError turns validator, builder and storage failures into the
// ApiErr a client should see.
func wrapDatabaseError(operation, entity string, cause error) error {
	var validationErr *payload.ValidationError
	var ruleErr *payload.RuleError
	var maxBytesErr *http.MaxBytesError

	switch {
	case cause == nil:
		return nil
	case errors.As(cause, &validationErr):
		return errs.NewValidationError(validationErr.Error(), validationErr.Missing)
	case errors.As(cause, &ruleErr):
		if errors.Is(ruleErr, payload.ErrNotAllowed) {
			return errs.NewConstraintViolation(ruleErr.Field, ruleErr.Allowed)
		}
		return errs.NewInvalidFieldError(ruleErr.Field, ruleErr.Message)
	case errors.As(cause, &maxBytesErr):
		return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
	case errors.Is(cause, sqlbuild.ErrEmptyUpdate), errors.Is(cause, sqlbuild.ErrEmptyInsert):
		return errs.NewBadRequestError("No fields to save.")
	}

	return errs.FromDatabase(operation, entity, cause)
}
