package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/getkin/kin-openapi/openapi3"
)

// OperationID identifies the prediction operation in the document.
const OperationID = "prever"

const jsonMediaType = "application/json"

//go:embed prever.yaml
var embedded []byte

// Raw returns the embedded OpenAPI document.
func Raw() []byte {
	return append([]byte(nil), embedded...)
}

// Contract is the parsed prediction contract.
type Contract struct {
	doc      *openapi3.T
	path     string
	request  *openapi3.Schema
	response *openapi3.Schema
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default parses the embedded document once and returns the shared result.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Parse(context.Background(), embedded)
	})
	return defaultContract, defaultErr
}

// Parse loads and validates an OpenAPI 3 document describing the prediction
// operation.
func Parse(ctx context.Context, data []byte) (*Contract, error) {
	if len(data) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("contract: document does not contain any paths")
	}

	for path, item := range doc.Paths.Map() {
		if item == nil || item.Post == nil || item.Post.OperationID != OperationID {
			continue
		}
		request, err := requestSchema(item.Post)
		if err != nil {
			return nil, err
		}
		response, err := responseSchema(item.Post)
		if err != nil {
			return nil, err
		}
		return &Contract{doc: doc, path: path, request: request, response: response}, nil
	}
	return nil, fmt.Errorf("contract: operation %q not found", OperationID)
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, errors.New("contract: operation has no request body")
	}
	media := op.RequestBody.Value.Content.Get(jsonMediaType)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("contract: request body has no JSON schema")
	}
	return media.Schema.Value, nil
}

func responseSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.Responses == nil {
		return nil, errors.New("contract: operation has no responses")
	}
	ref := op.Responses.Value("200")
	if ref == nil || ref.Value == nil {
		return nil, errors.New("contract: operation has no 200 response")
	}
	media := ref.Value.Content.Get(jsonMediaType)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("contract: 200 response has no JSON schema")
	}
	return media.Schema.Value, nil
}

// Path is the URL path of the prediction operation, e.g. "/prever".
func (c *Contract) Path() string {
	return c.path
}

// Title returns the document title.
func (c *Contract) Title() string {
	if c.doc == nil || c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// RequestFields lists the required request properties, sorted.
func (c *Contract) RequestFields() []string {
	out := append([]string(nil), c.request.Required...)
	sort.Strings(out)
	return out
}

// ValidateRequest checks v, any JSON-encodable value, against the request
// body schema.
func (c *Contract) ValidateRequest(v any) error {
	return validate(c.request, "request", v)
}

// ValidateResponse checks v against the 200 response schema.
func (c *Contract) ValidateResponse(v any) error {
	return validate(c.response, "response", v)
}

// Violation lists the schema failures of one document.
type Violation struct {
	Target string
	Issues []Issue
}

// Issue is one schema failure. Pointer is the JSON pointer of the offending
// value, e.g. "/UF".
type Issue struct {
	Pointer string
	Reason  string
}

func (v *Violation) Error() string {
	parts := make([]string, 0, len(v.Issues))
	for _, issue := range v.Issues {
		if issue.Pointer == "" {
			parts = append(parts, issue.Reason)
			continue
		}
		parts = append(parts, issue.Pointer+": "+issue.Reason)
	}
	return fmt.Sprintf("contract: %s does not match schema: %s", v.Target, strings.Join(parts, "; "))
}

// Properties returns the top-level property named by each issue pointer.
func (v *Violation) Properties() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, issue := range v.Issues {
		prop := strings.SplitN(strings.TrimPrefix(issue.Pointer, "/"), "/", 2)[0]
		if prop == "" {
			continue
		}
		if _, ok := seen[prop]; ok {
			continue
		}
		seen[prop] = struct{}{}
		out = append(out, prop)
	}
	return out
}

func validate(schema *openapi3.Schema, target string, v any) error {
	generic, err := toGeneric(v)
	if err != nil {
		return fmt.Errorf("contract: encode %s: %w", target, err)
	}
	err = schema.VisitJSON(generic, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return &Violation{Target: target, Issues: collectIssues(err)}
}

// toGeneric normalises v into the map/slice/float64 shapes the schema
// visitor understands.
func toGeneric(v any) (any, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectIssues(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, e := range multi {
			out = append(out, collectIssues(e)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := ""
		if parts := schemaErr.JSONPointer(); len(parts) > 0 {
			pointer = "/" + strings.Join(parts, "/")
		}
		return []Issue{{Pointer: pointer, Reason: schemaErr.Reason}}
	}
	return []Issue{{Reason: err.Error()}}
}
