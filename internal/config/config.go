package config

// Config represents the complete optdoc configuration.
// It can be loaded from .optdoc.yaml with environment variable overrides.
type Config struct {
	Output OutputConfig `yaml:"output" mapstructure:"output" json:"output"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan" json:"scan"`
}

// OutputConfig controls how extracted options are rendered.
type OutputConfig struct {
	Format      string `yaml:"format" mapstructure:"format" json:"format" jsonschema:"enum=markdown,enum=json,enum=html,enum=csv,enum=table"`
	Path        string `yaml:"path" mapstructure:"path" json:"path"`                            // empty means stdout
	Sort        bool   `yaml:"sort" mapstructure:"sort" json:"sort"`                            // sort options by name
	StripPrefix string `yaml:"strip_prefix" mapstructure:"strip_prefix" json:"strip_prefix"`    // dotted prefix removed from option names
}

// ScanConfig controls file discovery and extraction behavior.
type ScanConfig struct {
	Exclude           []string          `yaml:"exclude" mapstructure:"exclude" json:"exclude"` // glob patterns to skip
	Workers           int               `yaml:"workers" mapstructure:"workers" json:"workers" jsonschema:"minimum=0"`
	Replace           map[string]string `yaml:"replace" mapstructure:"replace" json:"replace"` // placeholder name -> value
	InterpolateValues bool              `yaml:"interpolate_values" mapstructure:"interpolate_values" json:"interpolate_values"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "markdown",
			Path:   "",
			Sort:   true,
		},
		Scan: ScanConfig{
			Exclude: []string{
				".git/**",
				"node_modules/**",
				"result/**",
			},
			Workers:           0, // 0 means one worker per CPU
			Replace:           map[string]string{},
			InterpolateValues: false,
		},
	}
}
