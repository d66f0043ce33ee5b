package configma

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/configma/pkg/config"
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/filesystem"
	"github.com/arthur-debert/configma/pkg/lock"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/style"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// session is the per-invocation wiring shared by commands: resolved
// locations, the loaded config and the output renderer.
type session struct {
	opts     *globalOptions
	fs       types.FS
	paths    paths.Paths
	store    *config.Store
	out      io.Writer
	color    bool
	renderer style.Renderer
	logger   zerolog.Logger
}

func newSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	p, err := paths.New(opts.configDir)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	store, err := config.NewStore(fs, p)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	color := useColor(out)
	s := &session{
		opts:     opts,
		fs:       fs,
		paths:    p,
		store:    store,
		out:      out,
		color:    color,
		renderer: style.NewRenderer(color),
		logger:   logging.GetLogger("cmd." + cmd.Name()),
	}
	s.logger.Debug().
		Str("repo", store.RepoRoot()).
		Str("config", store.ConfigFile()).
		Bool("dryRun", opts.dryRun).
		Msg("Session ready")
	return s, nil
}

// locked runs fn while holding the configma lock
func (s *session) locked(fn func() error) error {
	l, err := lock.Acquire(s.paths.LockFilePath())
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to release lock")
		}
	}()
	return fn()
}

func (s *session) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}

// printf formats a markup message and prints it, styled on color terminals
func (s *session) printf(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	if s.color {
		s.println(style.Render(text))
		return
	}
	s.println(style.Strip(text))
}

func (s *session) dryRunNotice() {
	if s.opts.dryRun {
		s.println("")
		s.printf("[warning]%s[/warning]", MsgDryRunNotice)
	}
}

// writeStructured encodes v as json or yaml. It reports false for the
// table format, which callers render themselves.
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case "", "table":
		return false, nil
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, errors.Wrap(err, errors.ErrInternal, "cannot encode json")
		}
		_, err = fmt.Fprintln(w, string(data))
		return true, err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, errors.Wrap(err, errors.ErrInternal, "cannot encode yaml")
		}
		return true, enc.Close()
	default:
		return true, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownFormat, format)
	}
}

// PrintError writes err to w the way every command failure is reported
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, style.NewRenderer(useColor(w)).RenderError(err))
}
