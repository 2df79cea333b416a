// Copyright 2025 Interview Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	// ErrMissingRequiredField is returned when a required configuration field is missing
	ErrMissingRequiredField = errors.New("missing required configuration field")
	// ErrInvalidConfigValue is returned when a configuration value is invalid
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Session   SessionConfig   `mapstructure:"session"`
	Prompt    PromptConfig    `mapstructure:"prompt"`
	Render    RenderConfig    `mapstructure:"render"`
	EvalCache EvalCacheConfig `mapstructure:"evalcache"`
	Audit     AuditConfig     `mapstructure:"audit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host             string   `mapstructure:"host"`
	Port             int      `mapstructure:"port"`
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	// APIKey enables bearer authentication when set; empty leaves the API open
	APIKey string `mapstructure:"api_key"`
}

// LLMConfig contains model provider settings
type LLMConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	Endpoint    string  `mapstructure:"endpoint"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	// MaxTokens overrides the automatic per-question token limit when > 0
	MaxTokens        int  `mapstructure:"max_tokens"`
	MaxTokensSimple  int  `mapstructure:"max_tokens_simple"`
	MaxTokensCode    int  `mapstructure:"max_tokens_code"`
	MaxTokensComplex int  `mapstructure:"max_tokens_complex"`
	Stream           bool `mapstructure:"stream"`
}

// SessionConfig contains session persistence settings
type SessionConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// PromptConfig contains prompt assembly settings
type PromptConfig struct {
	StrictPrecedence bool    `mapstructure:"strict_precedence"`
	StyleMode        string  `mapstructure:"style_mode"`
	StyleVariability float64 `mapstructure:"style_variability"`
	StyleSeed        int64   `mapstructure:"style_seed"`
}

// RenderConfig contains diagram rendering settings
type RenderConfig struct {
	PrimaryURL     string        `mapstructure:"primary_url"`
	FallbackURL    string        `mapstructure:"fallback_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxDiagramSize int           `mapstructure:"max_diagram_size"`
	Theme          string        `mapstructure:"theme"`
	StylePreset    string        `mapstructure:"style_preset"`
}

// EvalCacheConfig contains evaluation cache settings
type EvalCacheConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
	// TTL of zero keeps entries until size-based eviction
	TTL time.Duration `mapstructure:"ttl"`
}

// AuditConfig contains audit sink settings
type AuditConfig struct {
	StorageType string `mapstructure:"storage_type"`
	FilePath    string `mapstructure:"file_path"`
	DBPath      string `mapstructure:"db_path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed for field '%s': %s", e.Field, e.Message)
}

// LoadOptions contains options for configuration loading
type LoadOptions struct {
	ConfigPath       string
	Environment      string
	ValidateRequired bool
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over config file values.
func Load(configPath string) (*Config, error) {
	return LoadWithOptions(LoadOptions{
		ConfigPath:       configPath,
		Environment:      getEnvironment(),
		ValidateRequired: true,
	})
}

// LoadWithOptions loads configuration with additional options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	found, err := setConfigFile(v, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to set config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("INTERVIEW_ASSISTANT")

	if found {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	setEnvironmentMappings(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Out-of-range temperature is clamped rather than rejected.
	if config.LLM.Temperature < 0 {
		config.LLM.Temperature = 0
	}
	if config.LLM.Temperature > 1 {
		config.LLM.Temperature = 1
	}

	if opts.ValidateRequired {
		if err := validateConfig(&config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_allow_origins", []string{"*"})

	// LLM defaults
	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.endpoint", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "openai/gpt-oss-120b")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.max_tokens_simple", 300)
	v.SetDefault("llm.max_tokens_code", 800)
	v.SetDefault("llm.max_tokens_complex", 1200)
	v.SetDefault("llm.stream", false)

	// Session defaults
	v.SetDefault("session.data_dir", "./data/sessions")

	// Prompt defaults
	v.SetDefault("prompt.strict_precedence", true)
	v.SetDefault("prompt.style_mode", "auto")
	v.SetDefault("prompt.style_variability", 0.0)
	v.SetDefault("prompt.style_seed", 0)

	// Render defaults
	v.SetDefault("render.primary_url", "https://kroki.io/mermaid/svg")
	v.SetDefault("render.fallback_url", "https://demo.kroki.io/mermaid/svg")
	v.SetDefault("render.timeout", "15s")
	v.SetDefault("render.max_diagram_size", 40000)
	v.SetDefault("render.theme", "default")
	v.SetDefault("render.style_preset", "")

	// Evaluation cache defaults
	v.SetDefault("evalcache.max_entries", 1024)
	v.SetDefault("evalcache.ttl", "0s")

	// Audit defaults: disabled until a storage type is chosen
	v.SetDefault("audit.storage_type", "")
	v.SetDefault("audit.file_path", "./logs/audit.jsonl")
	v.SetDefault("audit.db_path", "./logs/audit.db")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// setConfigFile sets the configuration file path with fallback logic.
// The returned bool reports whether a config file was located; running with
// environment variables only is supported.
func setConfigFile(v *viper.Viper, configPath string) (bool, error) {
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return false, fmt.Errorf("config file specified by CONFIG_PATH does not exist: %s", envPath)
		}
		v.SetConfigFile(envPath)
		return true, nil
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return false, fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		return true, nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	for _, path := range []string{"./configs/config.yaml", "./config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// setEnvironmentMappings sets explicit environment variable mappings
func setEnvironmentMappings(v *viper.Viper) {
	envMappings := map[string]string{
		"GROQ_API_KEY":     "llm.api_key",
		"GROQ_MODEL":       "llm.model",
		"LLM_PROVIDER":     "llm.provider",
		"LLM_ENDPOINT":     "llm.endpoint",
		"API_KEY":          "server.api_key",
		"PORT":             "server.port",
		"SESSION_DATA_DIR": "session.data_dir",
		"LOG_LEVEL":        "logging.level",
		"LOG_FORMAT":       "logging.format",
		"LOG_OUTPUT":       "logging.output",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			v.Set(configKey, value)
		}
	}

	// ANALYTICS_PATH both enables the JSONL audit sink and points it at the file.
	if path := os.Getenv("ANALYTICS_PATH"); path != "" {
		v.Set("audit.storage_type", "file")
		v.Set("audit.file_path", path)
	}
}

// validateConfig validates the configuration for required fields and valid values
func validateConfig(config *Config) error {
	var errors []ValidationError

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if config.LLM.MaxTokensSimple <= 0 || config.LLM.MaxTokensCode <= 0 || config.LLM.MaxTokensComplex <= 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens_simple",
			Message: "token budgets must be greater than 0",
		})
	}

	if config.LLM.TopP < 0 || config.LLM.TopP > 1 {
		errors = append(errors, ValidationError{
			Field:   "llm.top_p",
			Message: "top_p must be between 0 and 1",
		})
	}

	if config.Session.DataDir == "" {
		errors = append(errors, ValidationError{
			Field:   "session.data_dir",
			Message: "session data directory is required",
		})
	}

	if config.Prompt.StyleVariability < 0 || config.Prompt.StyleVariability > 1 {
		errors = append(errors, ValidationError{
			Field:   "prompt.style_variability",
			Message: "style_variability must be between 0 and 1",
		})
	}

	if config.Render.PrimaryURL == "" {
		errors = append(errors, ValidationError{
			Field:   "render.primary_url",
			Message: "primary render URL is required",
		})
	}

	if config.Render.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "render.timeout",
			Message: "timeout must be greater than 0",
		})
	}

	if config.Render.MaxDiagramSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "render.max_diagram_size",
			Message: "max_diagram_size must be greater than 0",
		})
	}

	if config.EvalCache.MaxEntries <= 0 {
		errors = append(errors, ValidationError{
			Field:   "evalcache.max_entries",
			Message: "max_entries must be greater than 0",
		})
	}

	validStorageTypes := []string{"", "file", "sqlite"}
	if !contains(validStorageTypes, config.Audit.StorageType) {
		errors = append(errors, ValidationError{
			Field:   "audit.storage_type",
			Message: "storage type must be one of: file, sqlite (or empty to disable)",
		})
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(config.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("log level must be one of: %s", strings.Join(validLogLevels, ", ")),
		})
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, config.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("log format must be one of: %s", strings.Join(validLogFormats, ", ")),
		})
	}

	if len(errors) > 0 {
		var errorMessages []string
		for _, err := range errors {
			errorMessages = append(errorMessages, err.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errorMessages, "\n"))
	}

	return nil
}

// MaskSensitiveValues returns a copy of the config with sensitive values masked
func (c *Config) MaskSensitiveValues() *Config {
	masked := *c

	if masked.LLM.APIKey != "" {
		masked.LLM.APIKey = maskValue(masked.LLM.APIKey)
	}
	if masked.Server.APIKey != "" {
		masked.Server.APIKey = maskValue(masked.Server.APIKey)
	}

	return &masked
}

// maskValue masks sensitive values, showing only the first 8 characters
func maskValue(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:8] + strings.Repeat("*", len(value)-8)
}

// contains checks if a slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// getEnvironment returns the current environment (development, production, etc.)
func getEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}

// WatchConfig enables configuration hot-reloading for development
func WatchConfig(configPath string, callback func(*Config)) error {
	v := viper.New()

	found, err := setConfigFile(v, configPath)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no config file to watch")
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Printf("Config file changed: %s\n", e.Name)

		config, err := LoadWithOptions(LoadOptions{
			ConfigPath:       configPath,
			Environment:      getEnvironment(),
			ValidateRequired: true,
		})
		if err != nil {
			fmt.Printf("Failed to reload config: %v\n", err)
			return
		}

		callback(config)
	})

	return nil
}
