package config

// NewDefaultConfig returns the built-in defaults. It is the single source of
// truth for default values: viper defaults and flag defaults derive from it.
func NewDefaultConfig() *Config {
	return &Config{
		Debug: false,
		Event: EventConfig{
			Format: "text",
		},
		Kin: KinConfig{
			Output:   "out.pdf",
			Variable: "eta",
			Bins:     50,
			EtaMin:   -5,
			EtaMax:   5,
			PtMax:    200,
			MinPt:    0.5,
			Status:   1,
			Workers:  2,
		},
	}
}
