package configma

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Keep dotfiles in a repository and link them home"
	MsgNewProfileShort    = "Create a new profile"
	MsgSwitchProfileShort = "Switch the active profile"
	MsgAddShort           = "Start tracking files or directories"
	MsgRemoveShort        = "Stop tracking files or directories"
	MsgSyncShort          = "Link the active profile into the home directory"
	MsgStatusShort        = "Show the link state of tracked entries"
	MsgProfilesShort      = "List profiles"
	MsgVersionShort       = "Print version information"
	MsgCompletionShort    = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice       = "DRY RUN - no changes were made"
	MsgProfileCreated     = "Created profile [profile]%s[/profile] at [path]%s[/path]"
	MsgProfileWouldCreate = "Would create profile [profile]%s[/profile] at [path]%s[/path]"
	MsgProfileActivated   = "[profile]%s[/profile] is now the active profile"
	MsgSwitchedProfile    = "Switched from [profile]%s[/profile] to [profile]%s[/profile]"
	MsgActivatedProfile   = "Activated profile [profile]%s[/profile]"
	MsgBackupSession      = "Conflicting content was moved to [path]%s[/path]"
	MsgUnlinkedPrevious   = "Removed %d link(s) of the previous profile"
	MsgErrUnknownFormat   = "unknown output format %q (want table, json or yaml)"
	MsgErrNoCommand       = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagConfigDir = "Directory holding config.toml and the active profile marker"
	MsgFlagForce     = "Move conflicting content to a backup directory and link anyway"
	MsgFlagFormat    = "Output format: table, json or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/new-profile-long.txt
	msgNewProfileLongRaw string
	MsgNewProfileLong    = strings.TrimSpace(msgNewProfileLongRaw)

	//go:embed msgs/switch-profile-long.txt
	msgSwitchProfileLongRaw string
	MsgSwitchProfileLong    = strings.TrimSpace(msgSwitchProfileLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/remove-example.txt
	msgRemoveExampleRaw string
	MsgRemoveExample    = strings.TrimRight(msgRemoveExampleRaw, "\n")

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
