package telephony

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is matched by errors.Is for 404 responses
var ErrNotFound = errors.New("telephony: resource not found")

// APIError is a non-2xx response from the telephony API
type APIError struct {
	Status   int    `json:"status"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Code != 0:
		return fmt.Sprintf("telephony: status %d code %d: %s", e.Status, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("telephony: status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("telephony: status %d", e.Status)
	}
}

// Is reports 404 responses as ErrNotFound
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// parseAPIError builds an APIError from a response body, falling back to the raw body text
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr = &APIError{Message: strings.TrimSpace(string(body))}
	}
	apiErr.Status = status
	return apiErr
}
