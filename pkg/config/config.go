package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete driftlens configuration
type Config struct {
	Analyze AnalyzeConfig `mapstructure:"analyze"`
	Output  OutputConfig  `mapstructure:"output"`
	Storage StorageConfig `mapstructure:"storage"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AnalyzeConfig contains analysis engine configuration
type AnalyzeConfig struct {
	Workers int `mapstructure:"workers"`
}

// OutputConfig contains output formatting configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Pretty  bool   `mapstructure:"pretty"`
	NoColor bool   `mapstructure:"no_color"`
}

// StorageConfig contains report history configuration
type StorageConfig struct {
	BaseDir string `mapstructure:"base_dir"`
}

// UploadConfig contains object storage upload configuration
type UploadConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			Format:  "table",
			Pretty:  true,
			NoColor: false,
		},
		Storage: StorageConfig{
			BaseDir: "~/.driftlens",
		},
		Upload: UploadConfig{
			Endpoint: "",
			Bucket:   "analyzer-reports",
			Prefix:   "reports/",
			Region:   "us-east-1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from file and environment over the defaults
func Load() (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".driftlens"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DRIFTLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("logging.level", "DRIFTLENS_LOG_LEVEL", "LOG_LEVEL")
	viper.BindEnv("upload.endpoint", "DRIFTLENS_UPLOAD_ENDPOINT", "AWS_ENDPOINT_URL")
	viper.BindEnv("upload.bucket", "DRIFTLENS_UPLOAD_BUCKET", "S3_BUCKET")
	viper.BindEnv("upload.prefix", "DRIFTLENS_UPLOAD_PREFIX", "S3_PREFIX")
	viper.BindEnv("upload.region", "DRIFTLENS_UPLOAD_REGION", "AWS_DEFAULT_REGION")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine, defaults apply
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// ExpandPaths expands home directory paths
func (c *Config) ExpandPaths() error {
	expanded, err := expandPath(c.Storage.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to expand storage base dir: %w", err)
	}
	c.Storage.BaseDir = expanded
	return nil
}

// expandPath expands ~ to the home directory
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
