package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError - ошибка, которую вернул сервер. Понимает оба формата:
// {error, code, details} и админский {success:false, error, details}.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Details[f])
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var body struct {
		Error   string          `json:"error"`
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	if body.Error != "" {
		apiErr.Message = body.Error
	}
	apiErr.Code = body.Code

	if len(body.Details) > 0 {
		var details map[string]string
		if err := json.Unmarshal(body.Details, &details); err == nil {
			apiErr.Details = details
		}
	}
	return apiErr
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// FieldErrors - ошибки валидации по полям, если сервер их прислал
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Details
	}
	return nil
}
