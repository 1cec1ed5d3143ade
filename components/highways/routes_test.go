package highways

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	cases := []struct {
		base string
		fns  []OptionFn
		want string
	}{
		{base: "", want: "/api/highways"},
		{base: "/form", want: "/form/api/highways"},
		{base: "form/", want: "/form/api/highways"},
		{base: "/form", fns: []OptionFn{WithRoutePath("br")}, want: "/form/br"},
	}
	for _, tc := range cases {
		if got := MountPath(tc.base, tc.fns...); got != tc.want {
			t.Fatalf("MountPath(%q) = %q, want %q", tc.base, got, tc.want)
		}
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	c := New(WithHighways([]Highway{{Number: 101}}))

	pattern, err := c.RegisterRoutes(mux, "/form")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/form/api/highways" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern+"?q=101", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	list, err := c.Highways()
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected highways: %#v, %v", list, err)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
