package gotemplate_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ileso/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Olá {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"fields.tmpl":     {Data: []byte("{% for f in Fields %}{{ f.Name|slug }}={{ f.Value }};{% endfor %}")},
		"escape.tmpl":     {Data: []byte("{{ notice }}|{{ notice|safe }}")},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var written strings.Builder
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &written)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Olá Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if written.String() != result {
		t.Fatalf("writer mismatch: %q", written.String())
	}
}

func TestEngineConvertsStructs(t *testing.T) {
	engine := newEngine(t)

	type field struct {
		Name  string
		Value string
	}
	data := struct {
		Fields []field
	}{
		Fields: []field{{Name: "Veículos", Value: "1"}, {Name: "Mês", Value: "Janeiro"}},
	}

	result, err := engine.RenderTemplate("fields.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("veiculos=1;mes=Janeiro;", result); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineAutoescapes(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape", map[string]any{"notice": "<b>oi</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "&lt;b&gt;oi&lt;/b&gt;|<b>oi</b>" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("ileso_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderString("{{ name|ileso_shout }}", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}

	err = engine.RegisterFilter("ileso_shout", func(input any, _ any) (any, error) { return input, nil })
	if !errors.Is(err, gotemplate.ErrFilterExists) {
		t.Fatalf("expected ErrFilterExists, got %v", err)
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Pessoas":        "pessoas",
		"Veículos":       "veiculos",
		"Traçado":        "tracado",
		"Mês":            "mes",
		" Tipo de Pista": "tipo-de-pista",
	}
	for in, want := range cases {
		if got := gotemplate.Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
