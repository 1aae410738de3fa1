// Package config loads settings for the remember-me command-line client:
// defaults first, then an optional JSON file (-c/-config), then flags.
package config
