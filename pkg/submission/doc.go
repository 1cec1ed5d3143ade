// Package submission implements the submit workflow of the accident form:
// Idle, Pending, Succeeded and Failed, with at most one prediction in flight
// per controller.
package submission
