// Package lhekincmder provides the lhekin cobra command.
package lhekincmder

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	configcmder "github.com/sbinet-staging/lhetools/cmd/config"
	versioncmder "github.com/sbinet-staging/lhetools/cmd/version"
	"github.com/sbinet-staging/lhetools/pkg/config"
	"github.com/sbinet-staging/lhetools/pkg/kinematics"
	"github.com/sbinet-staging/lhetools/pkg/logger"
	"github.com/sbinet-staging/lhetools/pkg/selector"
)

type kinCommander struct {
	logger *zap.Logger
}

const kinLongDesc string = `Histogram the kinematics of particles over one or more LHE files.

Particles with the requested status and a transverse momentum above the
cut are histogrammed in eta and pT. Files are decoded concurrently. The
selected distribution is plotted to --output; the image format follows the
file extension.

Examples:
  lhekin run1.lhe run2.lhe -o eta.pdf
  lhekin run1.lhe --plot pt --where 'abs(pid) == 11' -o electrons.png`

const kinShortDesc string = "Histogram particle kinematics of LHE files"

var kinFlags = []string{
	config.FlagOutput,
	config.FlagVariable,
	config.FlagBins,
	config.FlagEtaMin,
	config.FlagEtaMax,
	config.FlagPtMax,
	config.FlagMinPt,
	config.FlagStatus,
	config.FlagWorkers,
	config.FlagNormalize,
	config.FlagKinExpr,
}

func NewLHEKinCmd() *cobra.Command {
	cmder := &kinCommander{}

	cmd := &cobra.Command{
		Use:   "lhekin [flags] <lhe_file>...",
		Short: kinShortDesc,
		Long:  kinLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	config.AddPersistentFlags(cmd)
	config.AddStringFlag(cmd, config.Flags, config.FlagOutput)
	config.AddStringFlag(cmd, config.Flags, config.FlagVariable)
	config.AddIntFlag(cmd, config.Flags, config.FlagBins)
	config.AddFloatFlag(cmd, config.Flags, config.FlagEtaMin)
	config.AddFloatFlag(cmd, config.Flags, config.FlagEtaMax)
	config.AddFloatFlag(cmd, config.Flags, config.FlagPtMax)
	config.AddFloatFlag(cmd, config.Flags, config.FlagMinPt)
	config.AddIntFlag(cmd, config.Flags, config.FlagStatus)
	config.AddIntFlag(cmd, config.Flags, config.FlagWorkers)
	config.AddBoolFlag(cmd, config.Flags, config.FlagNormalize)
	config.AddStringFlag(cmd, config.Flags, config.FlagKinExpr)

	cmd.AddCommand(versioncmder.NewVersionCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}

func (c *kinCommander) run(cmd *cobra.Command, paths []string) error {
	v, err := config.Setup(cmd, kinFlags)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	kc := cfg.Kin

	c.logger = logger.NewLoggerWithWriters(cfg.Debug, cmd.ErrOrStderr())
	defer func() { _ = c.logger.Sync() }()

	variable := kinematics.Variable(kc.Variable)
	if variable != kinematics.VariableEta && variable != kinematics.VariablePt {
		return fmt.Errorf("unknown distribution %q (want eta or pt)", kc.Variable)
	}

	sel, err := selector.New(kc.Where)
	if err != nil {
		return err
	}

	h, err := kinematics.Analyze(cmd.Context(), paths, kinematics.Config{
		Bins:     kc.Bins,
		EtaMin:   kc.EtaMin,
		EtaMax:   kc.EtaMax,
		PtMax:    kc.PtMax,
		MinPt:    kc.MinPt,
		Status:   int32(kc.Status),
		Workers:  kc.Workers,
		Selector: sel,
		Logger:   c.logger,
	})
	if err != nil {
		return err
	}

	if kc.Normalize {
		h.Normalize()
	}

	if err := h.Plot(variable, kc.Output); err != nil {
		return err
	}

	c.logger.Info("plot saved",
		zap.String("output", kc.Output),
		zap.String("variable", string(variable)),
	)
	return nil
}
