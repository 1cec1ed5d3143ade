// Package config loads the runtime settings shared by the CLI and the HTTP
// server. Values are layered: defaults, then an optional YAML file, then
// ILESO_* environment variables, then command-line flags.
package config
