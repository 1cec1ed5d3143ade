package highways

import (
	"sort"
	"strings"

	"github.com/goliatone/go-ileso/pkg/model"
)

// Search filters list by query. Entries whose number or code starts with the
// query rank before entries that merely contain it. A query of "BR-1", "br1"
// or "1" all match BR-101.
func Search(list []Highway, query string, limit int, opts Options) []Highway {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(list) <= limit {
				return append([]Highway{}, list...)
			}
			return append([]Highway{}, list[:limit]...)
		}
		return nil
	}

	q := normalizeQuery(query)
	if q == "" {
		return nil
	}

	matches := make([]matchedHighway, 0, 16)
	for _, h := range list {
		digits := h.Value()
		padded := strings.TrimPrefix(h.Code(), "BR-")
		if !strings.Contains(digits, q) && !strings.Contains(padded, q) {
			continue
		}
		matches = append(matches, matchedHighway{
			highway:  h,
			isPrefix: strings.HasPrefix(digits, q) || strings.HasPrefix(padded, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].highway.Number < matches[j].highway.Number
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Highway, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.highway)
	}
	return out
}

// SearchOptions is Search shaped as select options: the value is the bare
// number submitted by the form and the label is the road-sign code.
func SearchOptions(list []Highway, query string, limit int, opts Options) []model.Option {
	results := Search(list, query, limit, opts)
	if len(results) == 0 {
		return nil
	}
	return ToOptions(results)
}

// ToOptions converts highways to select options.
func ToOptions(list []Highway) []model.Option {
	out := make([]model.Option, 0, len(list))
	for _, h := range list {
		out = append(out, model.Option{Value: h.Value(), Label: h.Code()})
	}
	return out
}

func normalizeQuery(query string) string {
	q := strings.ToLower(query)
	q = strings.TrimPrefix(q, "br")
	return strings.TrimLeft(q, " -")
}

type matchedHighway struct {
	highway  Highway
	isPrefix bool
}
