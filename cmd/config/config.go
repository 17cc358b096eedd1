// Package configcmder provides the command printing the effective
// configuration.
package configcmder

import (
	"github.com/spf13/cobra"

	"github.com/sbinet-staging/lhetools/pkg/config"
)

const configLongDesc string = `Print the effective configuration as lhetools.toml content.

Values are resolved from, in order of precedence: environment variables
(LHETOOLS_KIN_BINS, LHETOOLS_EVENT_FORMAT, ...), the config file, and the
built-in defaults.`

func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  configLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.Setup(cmd, nil)
			if err != nil {
				return err
			}

			c, err := config.Load(v)
			if err != nil {
				return err
			}

			return config.Write(cmd.OutOrStdout(), c)
		},
	}
}
