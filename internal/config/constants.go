package config

const (
	// DefaultInputDir is scanned when no input directory is given.
	DefaultInputDir = "./data/input"
	// DefaultOutputDir receives markdown files and the images subdir.
	DefaultOutputDir = "./data/output"
	// DefaultParallelism bounds the batch worker pool.
	DefaultParallelism = 4
)
