package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Persistent flags shared by every lhetools root command.
const (
	FlagConfigFile = "config"
	FlagDebug      = "debug"
)

// AddPersistentFlags registers --config and --debug on a root command.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(FlagConfigFile, "c", "", "Path to an lhetools.toml config file")
	cmd.PersistentFlags().BoolP(FlagDebug, "d", false, "Enable debug logging")
}

// Setup initializes viper for cmd and binds the given registry flags along
// with --debug. Call it from PreRunE or RunE, after flag parsing.
func Setup(cmd *cobra.Command, registryKeys []string) (*viper.Viper, error) {
	var configFile string
	if f := cmd.Flag(FlagConfigFile); f != nil {
		configFile = f.Value.String()
	}

	v, err := InitViper(configFile)
	if err != nil {
		return nil, err
	}

	BindRegisteredFlags(v, cmd, Flags, registryKeys)
	if f := cmd.Flag(FlagDebug); f != nil {
		_ = v.BindPFlag("debug", f)
	}

	return v, nil
}
