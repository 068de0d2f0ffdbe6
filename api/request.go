package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/devtracker-backend/errs"
	"github.com/rpupo63/devtracker-backend/payload"
)

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := payload.AsID(chi.URLParam(r, name))
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, "must be a positive integer")
	}
	return id, nil
}

// decodeBody reads the request body as a JSON object. An empty body decodes
// to an empty object so the validator reports the missing keys.
func decodeBody(r *http.Request) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}

	body, err := payload.Decode(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		}
		return nil, errs.NewInvalidJSONError(err)
	}
	return body, nil
}

// peekBody decodes the body and puts the raw bytes back for the next
// reader. ok is false when the body is not a JSON object; the handler
// reports that itself.
func peekBody(r *http.Request) (body map[string]any, ok bool, err error) {
	if r.Body == nil {
		return map[string]any{}, true, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, false, errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		}
		return nil, false, errs.NewBadRequestError("Failed to read request body.")
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	body, decodeErr := payload.Decode(bytes.NewReader(raw))
	if decodeErr != nil {
		return nil, false, nil
	}
	return body, true, nil
}
