package configma

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/configma/internal/version"
	"github.com/arthur-debert/configma/pkg/cobrax/topics"
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	dryRun    bool
	configDir string
}

// Execute runs the command tree with args and closes the log file whether
// or not the command succeeded.
func Execute(args []string) error {
	defer logging.Close()

	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "configma",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logOpts := logging.Options{
				Verbosity: opts.verbosity,
				NoColor:   !useColor(os.Stderr),
			}
			if p, err := paths.New(opts.configDir); err == nil {
				logOpts.LogFile = p.LogFilePath()
			}
			logging.Setup(logOpts)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but still fail
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", MsgFlagConfigDir)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "profiles",
		Title: "PROFILES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "files",
		Title: "FILES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newNewProfileCmd(opts))
	rootCmd.AddCommand(newSwitchProfileCmd(opts))
	rootCmd.AddCommand(newProfilesCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newRemoveCmd(opts))
	rootCmd.AddCommand(newSyncCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help, rendered with glamour for markdown topics
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		m, err := topics.Load(sub, topics.Options{Renderer: topics.NewGlamourRenderer(useColor(os.Stdout))})
		if err == nil {
			topics.Install(rootCmd, m)
		} else {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}
