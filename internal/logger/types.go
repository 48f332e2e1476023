package logger

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn, error, fatal.
	Level string `yaml:"level" mapstructure:"level"`
	// Development enables console colors and development formatting.
	Development bool `yaml:"development" mapstructure:"development"`
	// Encoding selects the output encoder: console or json.
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
}
