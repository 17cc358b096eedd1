package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "lhetools"
	configType = "toml"

	// EnvPrefix prefixes every environment override, e.g. LHETOOLS_KIN_BINS.
	EnvPrefix = "LHETOOLS"
)

// InitViper creates and returns a configured *viper.Viper.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (LHETOOLS_EVENT_FORMAT, LHETOOLS_KIN_BINS, etc.)
//  3. lhetools.toml values
//  4. Defaults from NewDefaultConfig()
//
// configFile names the file explicitly; when empty, lhetools.toml is searched
// in $LHETOOLS_CONFIG_DIR, the working directory and the user config dir.
func InitViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if configFile != "" || !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// Load decodes the effective configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func configDirs() []string {
	var dirs []string
	if dir := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG_DIR")); dir != "" {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, ".")
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, configName))
	}
	return dirs
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("debug", d.Debug)

	// lheevent
	v.SetDefault("event.format", d.Event.Format)
	v.SetDefault("event.where", d.Event.Where)

	// lhekin
	v.SetDefault("kin.output", d.Kin.Output)
	v.SetDefault("kin.variable", d.Kin.Variable)
	v.SetDefault("kin.bins", d.Kin.Bins)
	v.SetDefault("kin.eta_min", d.Kin.EtaMin)
	v.SetDefault("kin.eta_max", d.Kin.EtaMax)
	v.SetDefault("kin.pt_max", d.Kin.PtMax)
	v.SetDefault("kin.min_pt", d.Kin.MinPt)
	v.SetDefault("kin.status", d.Kin.Status)
	v.SetDefault("kin.workers", d.Kin.Workers)
	v.SetDefault("kin.normalize", d.Kin.Normalize)
	v.SetDefault("kin.where", d.Kin.Where)
}
