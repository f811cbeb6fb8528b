package types

// ConversionConfig holds the settings layered from flags, environment and the
// optional YAML config file.
type ConversionConfig struct {
	// Python is the interpreter used to run convert.py. Empty means detect
	// python3, then python, on PATH.
	Python string `json:"python,omitempty" yaml:"python,omitempty" mapstructure:"python"`

	// Verbose lowers the log level to debug.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// LogFile, when set, sends logs to a rotated file instead of stderr.
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty" mapstructure:"log_file"`

	// DryRun prints the planned invocation without spawning the converter.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`
}
