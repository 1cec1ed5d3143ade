// Package template defines the template engine contract used by the HTML
// front end. The pongo2 implementation lives in the gotemplate subpackage.
package template
