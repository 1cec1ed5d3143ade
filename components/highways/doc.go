// Package highways ships the catalog of Brazilian federal highways (BR-xxx)
// used by the accident form, search helpers, and a net/http handler returning
// JSON options for autocomplete inputs.
//
// The handler answers GET and HEAD with {"data":[{"value":"101","label":"BR-101"}]}.
// A blank query returns the first entries of the catalog.
package highways
