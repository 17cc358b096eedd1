// Package lheeventcmder provides the lheevent cobra command.
package lheeventcmder

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	configcmder "github.com/sbinet-staging/lhetools/cmd/config"
	versioncmder "github.com/sbinet-staging/lhetools/cmd/version"
	"github.com/sbinet-staging/lhetools/pkg/config"
	"github.com/sbinet-staging/lhetools/pkg/logger"
	"github.com/sbinet-staging/lhetools/pkg/lookup"
	"github.com/sbinet-staging/lhetools/pkg/printer"
	"github.com/sbinet-staging/lhetools/pkg/selector"
)

type eventCommander struct {
	logger *zap.Logger
}

const eventLongDesc string = `Print the details of one event of a Les Houches Event file.

The event is selected by its 1-based number. The line on which its <event>
tag opens in the raw file is reported along with the particle list.

Examples:
  lheevent events.lhe 2
  lheevent events.lhe 2 --where 'status == 1 && pt > 20'
  lheevent events.lhe 2 --format yaml`

const eventShortDesc string = "Print one event of an LHE file"

var eventFlags = []string{
	config.FlagFormat,
	config.FlagEventExpr,
}

func NewLHEEventCmd() *cobra.Command {
	cmder := &eventCommander{}

	cmd := &cobra.Command{
		Use:   "lheevent <lhe_file> <event_number>",
		Short: eventShortDesc,
		Long:  eventLongDesc,
		Args:  eventArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[1])
			return cmder.run(cmd, args[0], n)
		},
	}

	config.AddPersistentFlags(cmd)
	config.AddStringFlag(cmd, config.Flags, config.FlagFormat)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventExpr)

	cmd.AddCommand(versioncmder.NewVersionCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}

func eventArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	if _, err := strconv.Atoi(args[1]); err != nil {
		return fmt.Errorf("invalid event number %q: must be an integer", args[1])
	}
	return nil
}

func (c *eventCommander) run(cmd *cobra.Command, path string, n int) error {
	v, err := config.Setup(cmd, eventFlags)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	c.logger = logger.NewLoggerWithWriters(cfg.Debug, cmd.ErrOrStderr())
	defer func() { _ = c.logger.Sync() }()

	format, err := printer.ParseFormat(cfg.Event.Format)
	if err != nil {
		return err
	}

	p := printer.New(cmd.OutOrStdout(), format)

	if err := c.show(cmd, p, cfg.Event.Where, path, n); err != nil {
		// Reported on stdout; the exit status stays zero.
		c.logger.Debug("event lookup failed",
			zap.String("path", path),
			zap.Int("event", n),
			zap.Error(err),
		)
		return p.Error(err)
	}
	return nil
}

func (c *eventCommander) show(cmd *cobra.Command, p *printer.Printer, where, path string, n int) error {
	sel, err := selector.New(where)
	if err != nil {
		return err
	}

	finder := lookup.New(&lookup.Config{
		Printer:  p,
		Selector: sel,
		Logger:   c.logger,
	})

	return finder.Show(cmd.Context(), path, n)
}
