package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

type Config struct {
	Logging   LogConfig        `toml:"logging"`
	Pipelines []PipelineConfig `toml:"pipeline"`
}

// LogConfig configures the embedding process's diagnostic logger, not the
// records being processed.
type LogConfig struct {
	// Output mode: "file", "stdout", "stderr", "none"
	Output string `toml:"output"`

	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// File output settings (when Output is "file")
	File *LogFileConfig `toml:"file"`
}

type LogFileConfig struct {
	// Directory for log files
	Directory string `toml:"directory"`

	// Base name for log files
	Name string `toml:"name"`

	// Maximum size per log file in MB
	MaxSizeMB int64 `toml:"max_size_mb"`

	// Log retention in hours (0 = disabled)
	RetentionHours float64 `toml:"retention_hours"`
}

// PipelineConfig is one named, ordered list of processing stages. The
// shipper routes records to pipelines by tag; routing itself is not
// configured here.
type PipelineConfig struct {
	Name   string        `toml:"name"`
	Stages []StageConfig `toml:"stage"`
}

// StageConfig selects a stage type ("process", "graylog", "loki") with its
// free-form options.
type StageConfig struct {
	Type    string         `toml:"type"`
	Options map[string]any `toml:"options"`
}

func defaults() *Config {
	return &Config{
		Logging: LogConfig{
			Output: "stderr",
			Level:  "info",
			File: &LogFileConfig{
				Directory:      "./log",
				Name:           "logmill",
				MaxSizeMB:      100,
				RetentionHours: 168, // 7 days
			},
		},
		Pipelines: []PipelineConfig{
			{
				Name: "default",
				Stages: []StageConfig{
					{Type: "process"},
				},
			},
		},
	}
}

// Load builds configuration from defaults, environment and the config
// file, lowest precedence first.
func Load() (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("LOGMILL_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	return "LOGMILL_" + env
}

func GetConfigPath() string {
	if configFile := os.Getenv("LOGMILL_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("LOGMILL_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("LOGMILL_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "logmill.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "logmill.toml")
	}

	return "logmill.toml"
}

func (c *Config) validate() error {
	if len(c.Pipelines) == 0 {
		return fmt.Errorf("no pipelines configured")
	}

	seen := make(map[string]bool)
	for i, p := range c.Pipelines {
		if p.Name == "" {
			return fmt.Errorf("pipeline[%d]: name required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate pipeline name: %s", p.Name)
		}
		seen[p.Name] = true

		if len(p.Stages) == 0 {
			return fmt.Errorf("pipeline '%s': at least one stage required", p.Name)
		}
	}

	switch c.Logging.Output {
	case "file":
		if c.Logging.File == nil || c.Logging.File.Directory == "" {
			return fmt.Errorf("file logging requires a directory")
		}
	case "stdout", "stderr", "none":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	return nil
}
