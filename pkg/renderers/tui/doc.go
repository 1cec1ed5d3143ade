// Package tui is the terminal front end of the accident form. A Session
// prompts for each field through a PromptDriver (survey by default),
// re-prompting until the value is accepted, then submits and prints the
// result banner.
package tui
