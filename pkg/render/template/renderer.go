package template

import (
	"io"
)

// TemplateRenderer is the engine seam the web renderer depends on.
type TemplateRenderer interface {
	// RenderTemplate executes the named template. When out is given the
	// result is also written to every writer.
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
