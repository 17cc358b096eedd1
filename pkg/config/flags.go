package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline.
type Flag struct {
	// Name is the long flag name (e.g. "bins").
	Name string

	// Shorthand is the one-letter short flag (e.g. "o"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "kin.bins").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of registry keys to flag definitions.
type FlagSet map[string]Flag

// Flag registry keys.
const (
	FlagFormat    = "format"
	FlagEventExpr = "event-where"
	FlagOutput    = "output"
	FlagVariable  = "variable"
	FlagBins      = "bins"
	FlagEtaMin    = "eta-min"
	FlagEtaMax    = "eta-max"
	FlagPtMax     = "pt-max"
	FlagMinPt     = "min-pt"
	FlagStatus    = "status"
	FlagWorkers   = "workers"
	FlagNormalize = "normalize"
	FlagKinExpr   = "kin-where"
)

// Flags is the registry shared by every lhetools command.
var Flags = FlagSet{
	FlagFormat: {
		Name:        "format",
		Shorthand:   "f",
		ViperKey:    "event.format",
		Description: "Output format: text, yaml or json",
	},
	FlagEventExpr: {
		Name:        "where",
		Shorthand:   "w",
		ViperKey:    "event.where",
		Description: "Only list particles matching this expression (e.g. 'status == 1 && pt > 20')",
	},
	FlagOutput: {
		Name:        "output",
		Shorthand:   "o",
		ViperKey:    "kin.output",
		Description: "Path of the output plot (.pdf, .png, .svg, .eps)",
	},
	FlagVariable: {
		Name:        "plot",
		Shorthand:   "p",
		ViperKey:    "kin.variable",
		Description: "Distribution to plot: eta or pt",
	},
	FlagBins: {
		Name:        "bins",
		Shorthand:   "b",
		ViperKey:    "kin.bins",
		Description: "Number of bins per histogram",
	},
	FlagEtaMin: {
		Name:        "eta-min",
		ViperKey:    "kin.eta_min",
		Description: "Lower edge of the eta histogram",
	},
	FlagEtaMax: {
		Name:        "eta-max",
		ViperKey:    "kin.eta_max",
		Description: "Upper edge of the eta histogram",
	},
	FlagPtMax: {
		Name:        "pt-max",
		ViperKey:    "kin.pt_max",
		Description: "Upper edge of the pT histogram",
	},
	FlagMinPt: {
		Name:        "min-pt",
		ViperKey:    "kin.min_pt",
		Description: "Minimum pT of a particle to be histogrammed",
	},
	FlagStatus: {
		Name:        "status",
		Shorthand:   "s",
		ViperKey:    "kin.status",
		Description: "Status code of histogrammed particles (1 is final state)",
	},
	FlagWorkers: {
		Name:        "workers",
		Shorthand:   "t",
		ViperKey:    "kin.workers",
		Description: "Number of files processed concurrently",
	},
	FlagNormalize: {
		Name:        "normalize",
		Shorthand:   "n",
		ViperKey:    "kin.normalize",
		Description: "Normalize histograms to unit area",
	},
	FlagKinExpr: {
		Name:        "where",
		Shorthand:   "w",
		ViperKey:    "kin.where",
		Description: "Only histogram particles matching this expression",
	},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// Values are read back through viper once the flag is bound.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().StringP(def.Name, def.Shorthand, defaults().GetString(def.ViperKey), def.Description)
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().IntP(def.Name, def.Shorthand, defaults().GetInt(def.ViperKey), def.Description)
}

// AddFloatFlag registers a float64 flag on cmd from the given FlagSet.
func AddFloatFlag(cmd *cobra.Command, fs FlagSet, key string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().Float64P(def.Name, def.Shorthand, defaults().GetFloat64(def.ViperKey), def.Description)
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, key string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	cmd.Flags().BoolP(def.Name, def.Shorthand, defaults().GetBool(def.ViperKey), def.Description)
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}
