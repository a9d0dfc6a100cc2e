package config

import "flag"

// Flags holds command-line overrides shared by objtool subcommands.
type Flags struct {
	Config     string
	Debug      bool
	LogFile    string
	Encoding   string
	Format     string
	Precision  int
	Workers    int
	NoProgress bool
	CPUProfile bool
}

// RegisterFlags binds the common flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file (rotated)")
	fs.StringVar(&f.Encoding, "encoding", "", "Input text encoding: utf-8 or euc-kr")
	fs.StringVar(&f.Format, "format", "", "Output format: text or yaml")
	fs.IntVar(&f.Precision, "precision", -2, "Coordinate decimals, -1 for shortest exact")
	fs.IntVar(&f.Workers, "workers", 0, "Number of parallel parse workers")
	fs.BoolVar(&f.NoProgress, "no-progress", false, "Disable progress bars")
	fs.BoolVar(&f.CPUProfile, "cpu-profile", false, "Record ./cpu.pprof profile")
	return f
}

// Load reads the config file named by the flags and applies the overrides.
func (f *Flags) Load() (*Config, error) {
	cfg, err := Load(f.Config)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	return cfg, cfg.Validate()
}

// Apply applies CLI flag overrides to the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Encoding != "" {
		cfg.Input.Encoding = f.Encoding
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Precision >= -1 {
		cfg.Output.Precision = f.Precision
	}
	if f.Workers > 0 {
		cfg.Check.Workers = f.Workers
	}
	if f.NoProgress {
		cfg.Check.Progress = false
	}
}
