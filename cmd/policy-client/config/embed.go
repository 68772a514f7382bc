package config

import _ "embed"

// EmbeddedConfigYAML is the default configuration; files found on the search
// paths override it.
//
//go:embed config.yaml
var EmbeddedConfigYAML []byte
