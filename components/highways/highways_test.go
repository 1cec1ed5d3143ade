package highways

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ileso/pkg/model"
)

func numbers(list []Highway) []int {
	out := make([]int, 0, len(list))
	for _, h := range list {
		out = append(out, h.Number)
	}
	return out
}

func TestLoadHighways_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# comment
BR-116
101
br 116

BR-010
`)

	list, err := LoadHighways(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]int{10, 101, 116}, numbers(list)); diff != "" {
		t.Fatalf("highways mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHighways_RejectsGarbage(t *testing.T) {
	if _, err := LoadHighways(strings.NewReader("BR-abc\n")); err == nil {
		t.Fatalf("expected error for invalid line")
	}
}

func TestDefaultHighways_ContainsCommonEntries(t *testing.T) {
	list, err := DefaultHighways()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) < 50 {
		t.Fatalf("expected a reasonably sized catalog, got %d", len(list))
	}
	for _, n := range []int{101, 116, 381} {
		if !Contains(list, n) {
			t.Fatalf("expected catalog to include BR-%d", n)
		}
	}
	if !Known(101) || Known(999) {
		t.Fatalf("unexpected Known results")
	}
}

func TestParseCode(t *testing.T) {
	cases := map[string]struct {
		want int
		ok   bool
	}{
		"101":     {101, true},
		"BR-101":  {101, true},
		"br 101":  {101, true},
		"BR101":   {101, true},
		" BR-010": {10, true},
		"BR-":     {0, false},
		"0":       {0, false},
		"cento":   {0, false},
	}
	for raw, tc := range cases {
		got, ok := ParseCode(raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseCode(%q) = %d, %v; want %d, %v", raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSearch_PrefixMatchesRankFirst(t *testing.T) {
	list := []Highway{{Number: 10}, {Number: 101}, {Number: 116}, {Number: 210}, {Number: 381}}
	opts := NewOptions()

	got := numbers(Search(list, "BR-1", 10, opts))
	if diff := cmp.Diff([]int{10, 101, 116, 210, 381}, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}

	got = numbers(Search(list, "10", 10, opts))
	if diff := cmp.Diff([]int{10, 101, 210}, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_EmptyQueryHonoursMode(t *testing.T) {
	list := []Highway{{Number: 10}, {Number: 101}, {Number: 116}}

	if got := Search(list, "", 2, NewOptions(WithEmptySearchMode(EmptySearchNone))); got != nil {
		t.Fatalf("expected no results, got %#v", got)
	}
	got := numbers(Search(list, "", 2, NewOptions()))
	if diff := cmp.Diff([]int{10, 101}, got); diff != "" {
		t.Fatalf("top results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchOptions_UsesNumberAsValue(t *testing.T) {
	got := SearchOptions([]Highway{{Number: 101}}, "101", 0, NewOptions())
	want := []model.Option{{Value: "101", Label: "BR-101"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
