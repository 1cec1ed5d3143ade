// Package validation declares the rule set of the accident form. Each rule is
// a predicate plus a message keyed for translation; the schema evaluates them
// uniformly and returns the failures ordered by field.
//
// Choice fields are only required to be non-empty by default. Pass
// WithStrictEnums to also require one of the catalogued values.
package validation
