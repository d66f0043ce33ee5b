package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables mapped onto config keys
const EnvPrefix = "CONFIGMA_"

// Config is the user configuration
type Config struct {
	// Repo is the repository root holding the profiles
	Repo string `koanf:"repo"`
	// BackupDir overrides where force-sync moves conflicting content
	BackupDir string `koanf:"backup_dir"`
}

// configKeys are the keys environment variables may set. Other CONFIGMA_*
// variables (CONFIGMA_CONFIG_DIR and friends) are path overrides, not config.
var configKeys = map[string]bool{
	"repo":       true,
	"backup_dir": true,
}

// Load reads the layered configuration for the given config directory.
// It returns the decoded config and the config file that was used, which is
// empty when no file exists.
func Load(configDir string) (*Config, string, error) {
	log := logging.GetLogger("config.loader")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, "", errors.Wrap(err, errors.ErrInternal, "failed to load default config")
	}

	// 2. User config file
	configFile := findConfigFile(configDir)
	if configFile != "" {
		parser := koanf.Parser(toml.Parser())
		if ext := filepath.Ext(configFile); ext == ".yaml" || ext == ".yml" {
			parser = yaml.Parser()
		}
		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, configFile, errors.Wrap(err, errors.ErrConfig, "malformed config file").
				WithPath(configFile)
		}
		log.Debug().Str("file", configFile).Msg("Loaded config file")
	}

	// 3. Environment
	envK := koanf.New(".")
	err := envK.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !configKeys[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, configFile, errors.Wrap(err, errors.ErrConfig, "failed to load environment")
	}
	fromEnv := nonEmpty(envK.All())
	if len(fromEnv) > 0 {
		log.Debug().Int("keys", len(fromEnv)).Msg("Config keys set from environment")
	}
	if err := k.Load(confmap.Provider(fromEnv, "."), nil); err != nil {
		return nil, configFile, errors.Wrap(err, errors.ErrConfig, "failed to merge environment")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				expandHomeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, configFile, errors.Wrap(err, errors.ErrConfig, "failed to decode configuration").
			WithPath(configFile)
	}

	return &cfg, configFile, nil
}

// findConfigFile returns the first existing config file in configDir
func findConfigFile(configDir string) string {
	for _, name := range []string{paths.ConfigFileName, "config.yaml", "config.yml"} {
		path := filepath.Join(configDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// nonEmpty drops empty string values so an exported but empty variable does
// not wipe a value from the config file.
func nonEmpty(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// expandHomeHookFunc expands a leading ~ in every string destined for a
// string field.
func expandHomeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		return paths.ExpandHome(data.(string)), nil
	}
}
