package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Paths
		Batch
		Logging
	}

	Paths struct {
		InputDir  string // Directory scanned for recipe exports
		OutputDir string // Directory receiving markdown + images
	}
	Batch struct {
		Parallelism int
		Recursive   bool
	}
	Logging struct {
		Level string // debug, info, warn, error
	}
)

// NewConfig reads configuration from the environment with sensible
// defaults. CLI flags take precedence over everything here.
func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("cookdown")
	v.AutomaticEnv()

	v.SetDefault("input_dir", DefaultInputDir)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("parallelism", DefaultParallelism)
	v.SetDefault("recursive", false)
	v.SetDefault("log_level", "info")

	return &Config{
		Paths: Paths{
			InputDir:  v.GetString("INPUT_DIR"),
			OutputDir: v.GetString("OUTPUT_DIR"),
		},
		Batch: Batch{
			Parallelism: v.GetInt("PARALLELISM"),
			Recursive:   v.GetBool("RECURSIVE"),
		},
		Logging: Logging{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
