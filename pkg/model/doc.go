// Package model defines the accident form consumed by the validation, form and
// submission packages. Field identifiers double as the wire keys expected by
// the prediction endpoint (`Pessoas`, `Veículos`, `Sentido`, ...) so payload
// building and server-side error mapping never need a translation table.
//
// Numeric inputs are carried as Number values that remember the raw text and
// whether it parsed. An unparseable value is kept (Valid=false) instead of being
// coerced to zero, which lets the validation schema reject it explicitly.
//
// The option catalogs (directions, weather, road types, layouts, states and
// months) mirror the dropdowns of the original form, including their display
// labels.
package model
