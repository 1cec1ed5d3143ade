package web

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ileso/pkg/model"
	"github.com/goliatone/go-ileso/pkg/present"
	"github.com/goliatone/go-ileso/pkg/render/template"
	"github.com/goliatone/go-ileso/pkg/render/template/gotemplate"
)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTemplateRenderer replaces the pongo2 engine.
func WithTemplateRenderer(engine template.TemplateRenderer) RendererOption {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplatesFS loads page.tmpl from files instead of the embedded copy.
func WithTemplatesFS(files fs.FS) RendererOption {
	return func(r *Renderer) {
		r.templates = files
	}
}

// WithThemeSelector sets the theme source and the theme to request from it.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) RendererOption {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = name
		r.variant = variant
	}
}

// WithNotice shows operator markup above the form. It is sanitized once.
func WithNotice(markup string) RendererOption {
	return func(r *Renderer) {
		r.notice = SanitizeNotice(markup)
	}
}

// WithRendererBasePath prefixes the form action and asset URLs.
func WithRendererBasePath(basePath string) RendererOption {
	return func(r *Renderer) {
		r.basePath = normalizeBasePath(basePath)
	}
}

// Renderer draws a present.View into the page template.
type Renderer struct {
	engine    template.TemplateRenderer
	templates fs.FS
	selector  theme.ThemeSelector
	themeName string
	variant   string
	notice    string
	basePath  string
}

// NewRenderer builds a renderer over the embedded template and the built-in
// theme unless options say otherwise.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		files := r.templates
		if files == nil {
			files = TemplatesFS()
		}
		engine, err := gotemplate.New(gotemplate.WithFS(files))
		if err != nil {
			return nil, fmt.Errorf("web: template engine: %w", err)
		}
		r.engine = engine
	}
	if r.selector == nil {
		selector, err := NewSelector(r.themeName, r.variant)
		if err != nil {
			return nil, err
		}
		r.selector = selector
	}
	return r, nil
}

// Page is one render of the form.
type Page struct {
	View present.View
	// Highways feeds the datalist of the numeric highway input.
	Highways []model.Option
	// HighwaysURL is the catalog search endpoint advertised on the input.
	HighwaysURL string
}

// Render writes the HTML page to w.
func (r *Renderer) Render(w io.Writer, page Page) error {
	if r == nil || r.engine == nil {
		return errors.New("web: renderer not initialised")
	}
	ctx, err := r.context(page)
	if err != nil {
		return err
	}
	if _, err := r.engine.RenderTemplate(PageTemplate, ctx, w); err != nil {
		return fmt.Errorf("web: render page: %w", err)
	}
	return nil
}

func (r *Renderer) context(page Page) (map[string]any, error) {
	v := page.View
	sel, err := r.selector.Select(r.themeName, r.variant)
	if err != nil {
		return nil, fmt.Errorf("web: select theme: %w", err)
	}
	cfg := RendererConfig(sel, r.basePath)

	themeCtx := map[string]any{}
	if cfg != nil {
		themeCtx["name"] = cfg.Theme
		themeCtx["variant"] = cfg.Variant
		themeCtx["css_vars"] = CSSVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			themeCtx["stylesheet"] = cfg.AssetURL("stylesheet")
		}
	}

	fields := make([]any, 0, len(v.Fields))
	for _, fv := range v.Fields {
		field := map[string]any{
			"name":        fv.Name,
			"id":          gotemplate.Slug(fv.Name),
			"label":       fv.Label,
			"placeholder": fv.Placeholder,
			"value":       fv.Value,
			"kind":        string(fv.Kind),
			"errors":      stringsToAny(fv.Errors),
		}
		if len(fv.Options) > 0 {
			options := make([]any, 0, len(fv.Options))
			for _, opt := range fv.Options {
				options = append(options, map[string]any{
					"value":    opt.Value,
					"label":    opt.Label,
					"selected": opt.Value == fv.Value,
				})
			}
			field["options"] = options
		}
		if fv.Field == model.FieldHighway && len(fv.Options) == 0 && len(page.Highways) > 0 {
			field["datalist"] = true
		}
		if fv.Field == model.FieldState {
			field["maxlength"] = "2"
		}
		fields = append(fields, field)
	}

	highwayOptions := make([]any, 0, len(page.Highways))
	for _, opt := range page.Highways {
		highwayOptions = append(highwayOptions, map[string]any{"value": opt.Value, "label": opt.Label})
	}

	ctx := map[string]any{
		"locale":       v.Locale,
		"title":        v.Title,
		"action":       r.action(),
		"notice":       r.notice,
		"fields":       fields,
		"button_label": v.ButtonLabel,
		"disabled":     v.Disabled,
		"error_notice": v.Notice,
		"messages":     stringsToAny(v.Messages),
		"theme":        themeCtx,
		"highways":     highwayOptions,
		"highways_url": page.HighwaysURL,
	}
	if v.Banner != nil {
		ctx["banner"] = map[string]any{
			"tone":  string(v.Banner.Tone),
			"title": v.Banner.Title,
			"value": v.Banner.Value,
		}
	}
	return ctx, nil
}

func (r *Renderer) action() string {
	if r.basePath == "" {
		return "/"
	}
	return r.basePath + "/"
}

func stringsToAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func normalizeBasePath(basePath string) string {
	trimmed := strings.Trim(strings.TrimSpace(basePath), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
