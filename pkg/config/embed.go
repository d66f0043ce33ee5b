package config

import (
	_ "embed"
)

// defaultConfig is the lowest config layer. It documents every key, so it
// doubles as the reference for hand-written config files.
//
//go:embed embedded/defaults.toml
var defaultConfig []byte
