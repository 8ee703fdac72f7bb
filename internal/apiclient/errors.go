package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the lab API. Message carries the
// server's human-readable detail when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lab api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("lab api: status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the lab API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsRejection reports whether err is a 4xx other than 401: a validation or
// business rejection that carries a message worth showing the operator.
func IsRejection(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusUnauthorized
}

// IsServerError reports whether err is a 5xx from the lab API.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// ErrorMessage extracts a display message from any error returned by this
// package: the server detail for API errors, the error text otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// errorBody matches the shapes the lab API uses for error payloads:
// FastAPI's {"detail": ...} plus the occasional {"message": ...}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

const maxErrorBodyLen = 8 << 10

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body errorBody
	if jsonErr := json.Unmarshal(data, &body); jsonErr != nil {
		return apiErr
	}

	switch {
	case body.Message != "":
		apiErr.Message = body.Message
	case len(body.Detail) > 0:
		// detail is usually a string, but FastAPI validation errors emit a
		// list of objects; fall back to the raw JSON for those.
		var s string
		if json.Unmarshal(body.Detail, &s) == nil {
			apiErr.Message = s
		} else {
			apiErr.Message = string(body.Detail)
		}
	}
	return apiErr
}
