package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/configma/pkg/errors"
)

// Environment variable names
const (
	EnvConfigDir = "CONFIGMA_CONFIG_DIR"
	EnvDataDir   = "CONFIGMA_DATA_DIR"
	EnvStateDir  = "CONFIGMA_STATE_DIR"
	EnvHome      = "HOME"
)

// Fixed names inside configma's own directories. These are not
// user-configurable.
const (
	AppDirName        = "configma"
	ConfigFileName    = "config.toml"
	ActiveProfileFile = "profile.active.toml"
	BackupsDirName    = "backups"
	LockFileName      = "configma.lock"
	LogFileName       = "configma.log"
)

// Paths provides the locations configma uses for its own files
type Paths interface {
	HomeDir() string
	ConfigDir() string
	DataDir() string
	StateDir() string
	ConfigFile() string
	ActiveProfilePath() string
	BackupsDir() string
	LockFilePath() string
	LogFilePath() string
}

type paths struct {
	home      string
	configDir string
	dataDir   string
	stateDir  string
}

// New creates a Paths instance. A non-empty configDir wins over
// CONFIGMA_CONFIG_DIR and the XDG default.
func New(configDir string) (Paths, error) {
	// xdg caches the environment at init; pick up changes made since.
	xdg.Reload()

	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{home: home}

	switch {
	case configDir != "":
		p.configDir = expandHome(configDir)
	case os.Getenv(EnvConfigDir) != "":
		p.configDir = expandHome(os.Getenv(EnvConfigDir))
	default:
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.dataDir = expandHome(dataDir)
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.stateDir = expandHome(stateDir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.dataDir, &p.stateDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func (p *paths) HomeDir() string   { return p.home }
func (p *paths) ConfigDir() string { return p.configDir }
func (p *paths) DataDir() string   { return p.dataDir }
func (p *paths) StateDir() string  { return p.stateDir }

// ConfigFile returns the path of the TOML config file. The loader also
// accepts a YAML file next to it.
func (p *paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

func (p *paths) ActiveProfilePath() string {
	return filepath.Join(p.configDir, ActiveProfileFile)
}

func (p *paths) BackupsDir() string {
	return filepath.Join(p.dataDir, BackupsDirName)
}

func (p *paths) LockFilePath() string {
	return filepath.Join(p.stateDir, LockFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path").WithPath(path)
	}

	return filepath.Clean(abs), nil
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// ContainsPath checks if child is parent or lies below it.
// Both paths must already be clean and absolute.
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
