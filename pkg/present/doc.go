// Package present turns the form and submission state into a View: field
// labels and visible errors, the submit control, and the result banner.
package present
