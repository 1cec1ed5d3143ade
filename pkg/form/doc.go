// Package form keeps the editable state of one accident form: the raw field
// values, whether errors have been revealed, and the subscribers notified on
// every change. Validity is computed from the schema on each call.
package form
