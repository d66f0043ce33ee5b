// Package paths provides centralized path handling for configma.
//
// It has two halves:
//
//   - Paths: where configma keeps its own files. Locations follow the XDG
//     Base Directory specification (via github.com/adrg/xdg) and can be
//     overridden per directory with environment variables.
//   - Resolver: the pure mapping between a tracked entry's system path (in
//     the user's home directory) and its repo path (inside the active
//     profile's directory of the repository). The resolver never touches
//     the filesystem.
//
// # Environment Variables
//
//   - CONFIGMA_CONFIG_DIR: config dir (default: $XDG_CONFIG_HOME/configma)
//   - CONFIGMA_DATA_DIR: data dir, holds backups (default: $XDG_DATA_HOME/configma)
//   - CONFIGMA_STATE_DIR: state dir, holds log and lock (default: $XDG_STATE_HOME/configma)
//
// # Layout
//
//	<config>/config.toml          user configuration (repo = "...")
//	<config>/profile.active.toml  active profile marker
//	<data>/backups/<session>/...  content displaced by force-sync
//	<state>/configma.log          log file
//	<state>/configma.lock         lock held by mutating commands
package paths
