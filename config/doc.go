// Package config loads the launchgate configuration file.
//
// Files are TOML or YAML, selected by extension. Loading applies defaults,
// expands ${VAR} references in values that commonly carry credentials, and
// validates the result, so callers receive a ready-to-use Config or an
// error naming the offending key.
package config
