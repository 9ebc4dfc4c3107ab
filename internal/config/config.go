// Package config handles quill configuration.
//
// Settings come from the process environment, optionally overlaid from a
// .env file found by searching the working directory, the user's home
// directory, and the directory of the installed binary, in that order.
// Environment variables take precedence over .env values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultModel is the chat model used when OPENAI_MODEL is unset.
	DefaultModel = "gpt-4o"

	// DefaultMaxFileSize is 10 MB.
	DefaultMaxFileSize int64 = 10485760

	// DefaultMaxIterations bounds the agent's reason/act cycles per run.
	DefaultMaxIterations = 25
)

// Config holds all quill configuration.
type Config struct {
	// OpenAIAPIKey authenticates against the completion service. Required.
	OpenAIAPIKey string `yaml:"openai_api_key"`

	// OpenAIModel selects the chat model.
	OpenAIModel string `yaml:"openai_model"`

	// OpenAIBaseURL optionally points at an OpenAI-compatible endpoint.
	OpenAIBaseURL string `yaml:"openai_base_url,omitempty"`

	// MaxFileSize is the per-file byte limit enforced by file operations.
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxIterations caps reason/act cycles before the agent gives up.
	MaxIterations int `yaml:"max_iterations"`
}

// DefaultConfig returns the default configuration without reading the
// environment.
func DefaultConfig() *Config {
	return &Config{
		OpenAIModel:   DefaultModel,
		MaxFileSize:   DefaultMaxFileSize,
		MaxIterations: DefaultMaxIterations,
	}
}

// Load reads configuration from the environment and the first .env file
// found in the search path.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("openai_model", DefaultModel)
	v.SetDefault("max_file_size", DefaultMaxFileSize)
	v.SetDefault("max_iterations", DefaultMaxIterations)

	if path, ok := findEnvFile(); ok {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	// Shell environment wins over .env file values.
	v.AutomaticEnv()

	return &Config{
		OpenAIAPIKey:  v.GetString("openai_api_key"),
		OpenAIModel:   v.GetString("openai_model"),
		OpenAIBaseURL: v.GetString("openai_base_url"),
		MaxFileSize:   v.GetInt64("max_file_size"),
		MaxIterations: v.GetInt("max_iterations"),
	}, nil
}

// findEnvFile searches the working directory, home directory, and the
// binary's directory for a .env file, stopping at the first match.
func findEnvFile() (string, bool) {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Validate checks that required configuration is present. It is called
// before any agent run starts.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set. Please set it in your environment " +
			"or create a .env file with OPENAI_API_KEY=your_key_here")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("MAX_ITERATIONS must be positive, got %d", c.MaxIterations)
	}
	return nil
}
