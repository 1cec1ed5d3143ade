package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ileso/pkg/model"
)

// LoadValues reads a YAML prefill file keyed by field name:
//
//	Pessoas: 2
//	UF: SP
//	BR: 116
func LoadValues(path string) (map[model.Field]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read values %s: %w", path, err)
	}
	values, err := DecodeValues(data)
	if err != nil {
		return nil, fmt.Errorf("config: values %s: %w", path, err)
	}
	return values, nil
}

// DecodeValues parses prefill YAML. Unknown field names and nested values are
// rejected; scalars are kept as the raw text a user would type.
func DecodeValues(data []byte) (map[model.Field]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	out := make(map[model.Field]string, len(raw))
	for key, value := range raw {
		field, ok := model.ParseField(key)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", key)
		}
		switch v := value.(type) {
		case nil:
			out[field] = ""
		case string:
			out[field] = v
		case int:
			out[field] = strconv.Itoa(v)
		case float64:
			out[field] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[field] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("field %q: unsupported value %T", key, value)
		}
	}
	return out, nil
}

// FormatValues renders values as the YAML DecodeValues reads, in form order.
func FormatValues(values map[model.Field]string) string {
	var b strings.Builder
	for _, field := range model.Fields() {
		v, ok := values[field]
		if !ok {
			continue
		}
		node := yaml.Node{Kind: yaml.ScalarNode, Value: v}
		if _, err := strconv.Atoi(v); err != nil {
			node.Style = yaml.DoubleQuotedStyle
		}
		encoded, err := yaml.Marshal(&node)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s", field, encoded)
	}
	return b.String()
}
