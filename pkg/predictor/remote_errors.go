package predictor

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/goliatone/go-ileso/pkg/model"
)

// RemoteErrors splits a service error body into field messages and form
// messages.
type RemoteErrors struct {
	Fields map[model.Field][]string
	Form   []string
}

// wrapper segments that prefix field locations in service error payloads
var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

type detailItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// ParseRemoteErrors understands the validation payloads returned by FastAPI
// style services:
//
//	{"detail":[{"loc":["body","UF"],"msg":"..."}]}
//	{"detail":"message"}
//	{"errors":{"/UF":["..."]}}
//
// Locations that do not resolve to a form field become form messages. Bodies
// that are not JSON yield an empty result.
func ParseRemoteErrors(body []byte) RemoteErrors {
	var out RemoteErrors
	if len(body) == 0 {
		return out
	}

	var envelope struct {
		Detail any                 `json:"detail"`
		Errors map[string][]string `json:"errors"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		return out
	}

	switch detail := envelope.Detail.(type) {
	case string:
		out.addForm(detail)
	case []any:
		raw, err := sonic.Marshal(detail)
		if err == nil {
			var items []detailItem
			if sonic.Unmarshal(raw, &items) == nil {
				for _, item := range items {
					out.add(locationSegments(item.Loc), item.Msg)
				}
			}
		}
	}

	for path, messages := range envelope.Errors {
		for _, msg := range messages {
			out.add(pathSegments(path), msg)
		}
	}
	return out
}

// Empty reports whether no message was recovered.
func (r RemoteErrors) Empty() bool {
	return len(r.Fields) == 0 && len(r.Form) == 0
}

func (r *RemoteErrors) add(segments []string, msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	if field, ok := resolveField(segments); ok {
		if r.Fields == nil {
			r.Fields = make(map[model.Field][]string)
		}
		for _, existing := range r.Fields[field] {
			if existing == msg {
				return
			}
		}
		r.Fields[field] = append(r.Fields[field], msg)
		return
	}
	r.addForm(msg)
}

func (r *RemoteErrors) addForm(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	for _, existing := range r.Form {
		if existing == msg {
			return
		}
	}
	r.Form = append(r.Form, msg)
}

func resolveField(segments []string) (model.Field, bool) {
	for len(segments) > 0 {
		if _, wrapper := wrapperSegments[strings.ToLower(segments[0])]; !wrapper {
			break
		}
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", false
	}
	return model.ParseField(segments[0])
}

func locationSegments(loc []any) []string {
	out := make([]string, 0, len(loc))
	for _, part := range loc {
		switch v := part.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, fmt.Sprintf("%d", int(v)))
		}
	}
	return out
}

func pathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	return strings.FieldsFunc(clean, func(r rune) bool {
		return r == '/' || r == '.'
	})
}
