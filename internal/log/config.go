package log

type Config struct {
	// Level is the minimum level to emit: debug, info, warn or error.
	Level string `conf:"level" yaml:"level" json:"level"`

	// Format selects the encoder: console or json.
	Format string `conf:"format" yaml:"format" json:"format"`

	// Output is stdout, stderr, or a file path. File outputs are rotated.
	Output string `conf:"output" yaml:"output" json:"output"`

	File FileConfig `conf:"file" yaml:"file" json:"file"`
}

// FileConfig controls rotation when Output is a file path.
type FileConfig struct {
	MaxSizeMB  int  `conf:"max_size_mb"  yaml:"max_size_mb"  json:"max_size_mb"`
	MaxBackups int  `conf:"max_backups"  yaml:"max_backups"  json:"max_backups"`
	MaxAgeDays int  `conf:"max_age_days" yaml:"max_age_days" json:"max_age_days"`
	Compress   bool `conf:"compress"     yaml:"compress"     json:"compress"`
}

func (c Config) withDefaults() Config {
	if c.Level == "" {
		c.Level = "info"
	}

	if c.Format == "" {
		c.Format = "console"
	}

	if c.Output == "" {
		c.Output = "stderr"
	}

	if c.File.MaxSizeMB == 0 {
		c.File.MaxSizeMB = 100
	}

	if c.File.MaxBackups == 0 {
		c.File.MaxBackups = 5
	}

	return c
}
