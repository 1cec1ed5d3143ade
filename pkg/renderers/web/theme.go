package web

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultThemeName = "ileso"
	VariantLight     = "light"
	VariantDark      = "dark"
)

// DefaultManifest describes the built-in theme. Token names become CSS
// variables, so "primary" is exposed as --primary.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":      "#ffffff",
			"text":         "#1f2937",
			"muted":        "#6b7280",
			"primary":      "#2563eb",
			"primary-text": "#ffffff",
			"warning-bg":   "#fef3c7",
			"warning-text": "#92400e",
			"error":        "#b91c1c",
			"error-bg":     "#fee2e2",
			"border":       "#d1d5db",
			"radius":       "6px",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					"surface":      "#111827",
					"text":         "#f9fafb",
					"muted":        "#9ca3af",
					"warning-bg":   "#78350f",
					"warning-text": "#fde68a",
					"error-bg":     "#7f1d1d",
					"error":        "#fca5a5",
					"border":       "#374151",
				},
			},
		},
	}
}

// Selector resolves a theme and variant from registered manifests. Unknown
// names fall back to the defaults given to NewSelector.
type Selector struct {
	mu             sync.RWMutex
	registry       manifestRegistry
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// NewSelector registers manifests. The built-in manifest is always present.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{
		registry:       theme.NewRegistry(),
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	if s.defaultTheme == "" {
		s.defaultTheme = DefaultThemeName
	}
	for _, m := range append([]*theme.Manifest{DefaultManifest()}, manifests...) {
		if err := s.Register(m); err != nil {
			return nil, err
		}
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("web: unknown default theme %q", s.defaultTheme)
	}
	return s, nil
}

// Register adds or replaces a manifest.
func (s *Selector) Register(m *theme.Manifest) error {
	if m == nil {
		return fmt.Errorf("web: nil theme manifest")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.manifests[m.Name]; !exists {
		if err := s.registry.Register(m); err != nil {
			return fmt.Errorf("web: register theme %q: %w", m.Name, err)
		}
	}
	s.manifests[m.Name] = m
	return nil
}

// Select returns the manifest named name, or the default theme. A variant the
// manifest does not define resolves to the base tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		manifest, ok = s.manifests[s.defaultTheme]
		if !ok {
			return nil, fmt.Errorf("web: theme %q not found", name)
		}
		name = s.defaultTheme
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	if _, ok := manifest.Variants[variant]; !ok && variant != VariantLight {
		variant = ""
	}
	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// RendererConfig flattens a selection into the tokens, CSS variables and
// asset resolver the page template needs. basePath prefixes asset URLs.
func RendererConfig(sel *theme.Selection, basePath string) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	tokens := copyStringMap(manifest.Tokens)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	partials := copyStringMap(manifest.Templates)

	if v, ok := manifest.Variants[sel.Variant]; ok {
		tokens = mergeStringMap(tokens, v.Tokens)
		files = mergeStringMap(files, v.Assets.Files)
		partials = mergeStringMap(partials, v.Templates)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
				return file
			}
			return path.Join("/", strings.Trim(basePath, "/"), prefix, file)
		},
	}
}

// CSSVarsStyle renders vars as sorted "name: value;" declarations.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(base, overrides map[string]string) map[string]string {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}
