// Package config holds the configma Config Store.
//
// Configuration is layered with koanf, lowest precedence first:
//
//  1. Embedded defaults (embedded/defaults.toml)
//  2. The user config file: config.toml, or config.yaml / config.yml, in
//     the config directory
//  3. CONFIGMA_* environment variables (CONFIGMA_REPO, CONFIGMA_BACKUP_DIR)
//
// The active profile is not part of the config file. It is recorded in a
// small marker file (profile.active.toml) next to it, which configma
// rewrites on switch-profile.
package config
