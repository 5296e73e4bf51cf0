// Package config holds gonewton's runtime settings: solver defaults,
// logging, report format and the HTTP listen address. Settings come from
// defaults, then an optional YAML file, then CLI flags.
package config
