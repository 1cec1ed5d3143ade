package form

import (
	"strings"

	"github.com/goliatone/go-ileso/components/highways"
	"github.com/goliatone/go-ileso/pkg/model"
)

// HighwayInput converts the raw highway text captured by a front end into a
// Number. Implementations never fail: unusable input yields an invalid Number
// so the schema reports it.
type HighwayInput interface {
	Parse(raw string) model.Number
	Name() string
}

// NumericHighway accepts the highway as a plain integer.
type NumericHighway struct{}

func (NumericHighway) Name() string { return "numeric" }

func (NumericHighway) Parse(raw string) model.Number {
	return model.ParseNumber(raw)
}

// CatalogHighway accepts catalog entries such as "101" or "BR-101" and
// coerces them to the highway number.
type CatalogHighway struct{}

func (CatalogHighway) Name() string { return "catalog" }

func (CatalogHighway) Parse(raw string) model.Number {
	if strings.TrimSpace(raw) == "" {
		return model.Number{Raw: raw}
	}
	if n, ok := highways.ParseCode(raw); ok {
		return model.Number{Value: n, Raw: raw, Valid: true}
	}
	// "0" and "-5" are integers; the schema reports them as non-positive.
	return model.ParseNumber(raw)
}

// HighwayInputFor resolves a strategy by name. Unknown names fall back to
// NumericHighway.
func HighwayInputFor(name string) HighwayInput {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "catalog":
		return CatalogHighway{}
	default:
		return NumericHighway{}
	}
}
