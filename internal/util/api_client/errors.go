package api_client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"creativeflow/internal/util/app_errors"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// mapStatusError converts an error response into the app_errors taxonomy.
// A 400 with field messages becomes a ValidationError.
func mapStatusError(status int, body []byte) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Error
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusBadRequest && len(parsed.Fields) > 0:
		return app_errors.NewValidationError(parsed.Fields)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", app_errors.ErrBadRequest, message)
	case status == http.StatusUnauthorized:
		return app_errors.ErrUnauthorized
	case status == http.StatusForbidden:
		return app_errors.ErrForbidden
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, app_errors.ErrNotFound)
	case status == http.StatusConflict:
		return fmt.Errorf("%s: %w", message, app_errors.ErrConflict)
	case status == http.StatusTooManyRequests:
		return app_errors.ErrTooManyCalls
	default:
		return fmt.Errorf("%w: status %d: %s", app_errors.ErrServer, status, message)
	}
}
