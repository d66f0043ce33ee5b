package configma

import (
	"fmt"

	"github.com/arthur-debert/configma/internal/version"
	"github.com/arthur-debert/configma/pkg/profiles"
	"github.com/arthur-debert/configma/pkg/repo"
	"github.com/arthur-debert/configma/pkg/status"
	"github.com/arthur-debert/configma/pkg/syncer"
	"github.com/arthur-debert/configma/pkg/track"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/spf13/cobra"
)

// statusOutput is the machine-readable form of `configma status`
type statusOutput struct {
	Profile string              `json:"profile" yaml:"profile"`
	InSync  bool                `json:"in_sync" yaml:"in_sync"`
	Entries []types.EntryStatus `json:"entries" yaml:"entries"`
}

// profileNamesCompletion completes the single profile argument
func profileNamesCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := newSession(cmd, opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names, err := repo.ListProfiles(s.fs, s.store.RepoRoot())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func newNewProfileCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "new-profile <name>",
		Short:   MsgNewProfileShort,
		Long:    MsgNewProfileLong,
		GroupID: "profiles",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			return s.locked(func() error {
				mgr := profiles.NewManager(profiles.Options{FS: s.fs, Store: s.store, DryRun: opts.dryRun})
				res, err := mgr.Create(args[0])
				if err != nil {
					return err
				}

				if res.DryRun {
					s.printf(MsgProfileWouldCreate, res.Name, res.Dir)
				} else {
					s.printf(MsgProfileCreated, res.Name, res.Dir)
				}
				if res.Activated {
					s.printf(MsgProfileActivated, res.Name)
				}
				s.dryRunNotice()
				return nil
			})
		},
	}
}

func newSwitchProfileCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "switch-profile <name>",
		Short:             MsgSwitchProfileShort,
		Long:              MsgSwitchProfileLong,
		GroupID:           "profiles",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: profileNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			return s.locked(func() error {
				mgr := profiles.NewManager(profiles.Options{FS: s.fs, Store: s.store, DryRun: opts.dryRun})
				res, err := mgr.Switch(args[0], force)
				if err != nil {
					return err
				}

				if res.Unlinked != nil {
					if n := res.Unlinked.Counts()[types.OutcomeUnlinked]; n > 0 {
						s.printf(MsgUnlinkedPrevious, n)
					}
				}
				if res.From == "" || res.From == res.To {
					s.printf(MsgActivatedProfile, res.To)
				} else {
					s.printf(MsgSwitchedProfile, res.From, res.To)
				}
				s.println(s.renderer.RenderSyncReport(res.Synced))
				s.dryRunNotice()
				return syncer.ReportError(res.Synced)
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newProfilesCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "profiles",
		Short:   MsgProfilesShort,
		GroupID: "profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			mgr := profiles.NewManager(profiles.Options{FS: s.fs, Store: s.store})
			infos, err := mgr.List()
			if err != nil {
				return err
			}

			if done, err := writeStructured(s.out, format, infos); done {
				return err
			}
			s.println(s.renderer.RenderProfiles(infos))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", MsgFlagFormat)
	return cmd
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <path>...",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		GroupID: "files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			return s.locked(func() error {
				profile, err := s.store.ActiveProfile()
				if err != nil {
					return err
				}

				tracker := track.New(track.Options{FS: s.fs, Resolver: s.store.Resolver(), DryRun: opts.dryRun})
				results, err := tracker.AddAll(profile, args)
				if len(results) > 0 {
					s.println(s.renderer.RenderTrackResults(results))
				}
				s.dryRunNotice()
				return err
			})
		},
	}
}

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <path>...",
		Aliases: []string{"rm"},
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		Example: MsgRemoveExample,
		GroupID: "files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			return s.locked(func() error {
				profile, err := s.store.ActiveProfile()
				if err != nil {
					return err
				}

				tracker := track.New(track.Options{FS: s.fs, Resolver: s.store.Resolver(), DryRun: opts.dryRun})
				results, err := tracker.RemoveAll(profile, args)
				if len(results) > 0 {
					s.println(s.renderer.RenderTrackResults(results))
				}
				s.dryRunNotice()
				return err
			})
		},
	}
}

func newSyncCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			return s.locked(func() error {
				profile, err := s.store.ActiveProfile()
				if err != nil {
					return err
				}

				engine := syncer.New(syncer.Options{
					FS:         s.fs,
					Resolver:   s.store.Resolver(),
					BackupRoot: s.store.BackupRoot(),
					DryRun:     opts.dryRun,
				})
				report, err := engine.Sync(profile, force)
				if err != nil {
					return err
				}

				s.println(s.renderer.RenderSyncReport(report))
				if session := engine.BackupSession(); session != "" && !opts.dryRun {
					s.printf(MsgBackupSession, session)
				}
				s.dryRunNotice()
				return syncer.ReportError(report)
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "files",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			profile, err := s.store.ActiveProfile()
			if err != nil {
				return err
			}

			statuses, err := status.NewChecker(s.fs, s.store.Resolver()).Check(profile)
			if err != nil {
				return err
			}
			if statuses == nil {
				statuses = []types.EntryStatus{}
			}

			out := statusOutput{Profile: profile, InSync: status.InSync(statuses), Entries: statuses}
			if done, err := writeStructured(s.out, format, out); done {
				return err
			}
			s.println(s.renderer.RenderStatus(profile, statuses))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", MsgFlagFormat)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
