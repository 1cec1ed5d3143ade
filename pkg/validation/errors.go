package validation

import (
	"strings"

	"github.com/goliatone/go-ileso/pkg/model"
)

// FieldError is a single failed rule. Key identifies the message for
// translation; Message holds the default (pt-BR) text.
type FieldError struct {
	Field   model.Field `json:"field"`
	Key     string      `json:"key"`
	Message string      `json:"message"`
}

// Errors is the ordered result of a validation pass. An empty value means the
// input is submittable.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: ok"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, string(fe.Field)+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Has reports whether any rule failed for field.
func (e Errors) Has(field model.Field) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns the failures attached to field.
func (e Errors) For(field model.Field) []FieldError {
	var out []FieldError
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

// Messages groups the default messages by field.
func (e Errors) Messages() map[model.Field][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[model.Field][]string)
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Fields lists the fields with failures, in form order.
func (e Errors) Fields() []model.Field {
	var out []model.Field
	for _, field := range model.Fields() {
		if e.Has(field) {
			out = append(out, field)
		}
	}
	return out
}
