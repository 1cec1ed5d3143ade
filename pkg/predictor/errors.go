package predictor

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-ileso/pkg/model"
)

// NetworkError reports a transport failure or a non-2xx response. StatusCode
// is zero when no response was received.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Message    string
	// Fields holds per-field messages the service returned, if any.
	Fields map[model.Field][]string
	// Form holds service messages that could not be tied to a field.
	Form []string
	Err  error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("predictor: %s %s: status %d: %s", e.Op, e.URL, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("predictor: %s %s: status %d %s", e.Op, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("predictor: %s %s: %v", e.Op, e.URL, e.Err)
	default:
		return fmt.Sprintf("predictor: %s %s failed", e.Op, e.URL)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseShapeError reports a 2xx response whose body does not carry a
// usable probabilidade_ileso.
type ResponseShapeError struct {
	Reason string
	Body   string
	Err    error
}

func (e *ResponseShapeError) Error() string {
	return "predictor: unexpected response: " + e.Reason
}

func (e *ResponseShapeError) Unwrap() error {
	return e.Err
}

// PayloadError reports a payload rejected before sending. Nothing reached the
// network.
type PayloadError struct {
	Fields []string
	Err    error
}

func (e *PayloadError) Error() string {
	if e.Err == nil {
		return "predictor: invalid payload"
	}
	return "predictor: invalid payload: " + e.Err.Error()
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// FieldErrors returns the per-field messages carried by the response.
func (e *NetworkError) FieldErrors() map[model.Field][]string {
	return e.Fields
}

// FormErrors returns the service messages not tied to a field.
func (e *NetworkError) FormErrors() []string {
	return e.Form
}
