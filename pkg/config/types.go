package config

// Config is the effective lhetools configuration. The TOML layout of
// lhetools.toml uses one section per tool.
type Config struct {
	Debug bool        `toml:"debug" mapstructure:"debug"`
	Event EventConfig `toml:"event" mapstructure:"event"`
	Kin   KinConfig   `toml:"kin" mapstructure:"kin"`
}

// EventConfig holds lheevent settings.
type EventConfig struct {
	Format string `toml:"format" mapstructure:"format"`
	Where  string `toml:"where,omitempty" mapstructure:"where"`
}

// KinConfig holds lhekin settings.
type KinConfig struct {
	Output    string  `toml:"output" mapstructure:"output"`
	Variable  string  `toml:"variable" mapstructure:"variable"`
	Bins      int     `toml:"bins" mapstructure:"bins"`
	EtaMin    float64 `toml:"eta_min" mapstructure:"eta_min"`
	EtaMax    float64 `toml:"eta_max" mapstructure:"eta_max"`
	PtMax     float64 `toml:"pt_max" mapstructure:"pt_max"`
	MinPt     float64 `toml:"min_pt" mapstructure:"min_pt"`
	Status    int     `toml:"status" mapstructure:"status"`
	Workers   int     `toml:"workers" mapstructure:"workers"`
	Normalize bool    `toml:"normalize" mapstructure:"normalize"`
	Where     string  `toml:"where,omitempty" mapstructure:"where"`
}
