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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return configPath
}

func TestLoadConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
  cors_allow_origins: ["https://app.example.com"]
  api_key: "test-bearer-key"  # pragma: allowlist secret
llm:
  provider: "groq"
  api_key: "gsk-test-key"  # pragma: allowlist secret
  model: "openai/gpt-oss-120b"
  temperature: 0.3
  max_tokens_simple: 256
  max_tokens_code: 900
  max_tokens_complex: 1500
  stream: true
session:
  data_dir: "./test_sessions"
prompt:
  strict_precedence: false
  style_mode: "executive"
render:
  primary_url: "https://kroki.example.com/mermaid/svg"
  timeout: "10s"
  max_diagram_size: 20000
evalcache:
  max_entries: 64
  ttl: "5m"
audit:
  storage_type: "sqlite"
  db_path: "./test_audit.db"
logging:
  level: "debug"
  format: "json"
  output: "stdout"
`)

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Server.Host != "127.0.0.1" || config.Server.Port != 9000 {
		t.Errorf("Expected server 127.0.0.1:9000, got %s:%d", config.Server.Host, config.Server.Port)
	}

	if config.LLM.Temperature != 0.3 {
		t.Errorf("Expected temperature 0.3, got %f", config.LLM.Temperature)
	}

	if config.LLM.MaxTokensCode != 900 {
		t.Errorf("Expected max_tokens_code 900, got %d", config.LLM.MaxTokensCode)
	}

	if config.Prompt.StrictPrecedence {
		t.Error("Expected strict_precedence false")
	}

	if config.Render.Timeout != 10*time.Second {
		t.Errorf("Expected render timeout 10s, got %v", config.Render.Timeout)
	}

	if config.EvalCache.MaxEntries != 64 || config.EvalCache.TTL != 5*time.Minute {
		t.Errorf("Expected evalcache 64/5m, got %d/%v", config.EvalCache.MaxEntries, config.EvalCache.TTL)
	}

	if config.Audit.StorageType != "sqlite" {
		t.Errorf("Expected audit storage sqlite, got %s", config.Audit.StorageType)
	}
}

func TestDefaults(t *testing.T) {
	config, err := LoadWithOptions(LoadOptions{ValidateRequired: true})
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	if config.Server.Port != 8000 {
		t.Errorf("Expected default port 8000, got %d", config.Server.Port)
	}
	if config.LLM.MaxTokensSimple != 300 || config.LLM.MaxTokensCode != 800 || config.LLM.MaxTokensComplex != 1200 {
		t.Errorf("Unexpected default token budgets: %d/%d/%d",
			config.LLM.MaxTokensSimple, config.LLM.MaxTokensCode, config.LLM.MaxTokensComplex)
	}
	if !config.Prompt.StrictPrecedence {
		t.Error("Expected strict_precedence to default to true")
	}
	if config.Render.PrimaryURL != "https://kroki.io/mermaid/svg" {
		t.Errorf("Unexpected default render URL: %s", config.Render.PrimaryURL)
	}
	if config.Render.MaxDiagramSize != 40000 {
		t.Errorf("Unexpected default max diagram size: %d", config.Render.MaxDiagramSize)
	}
	if config.Audit.StorageType != "" {
		t.Errorf("Expected audit to default to disabled, got %q", config.Audit.StorageType)
	}
}

func TestEnvironmentVariableOverrides(t *testing.T) {
	configPath := writeConfig(t, `
llm:
  api_key: "gsk-default-key"
logging:
  level: "info"
`)

	_ = os.Setenv("GROQ_API_KEY", "gsk-env-key")
	_ = os.Setenv("API_KEY", "bearer-env-key")
	_ = os.Setenv("LOG_LEVEL", "debug")
	_ = os.Setenv("ANALYTICS_PATH", "./logs/qna.jsonl")

	defer func() {
		_ = os.Unsetenv("GROQ_API_KEY")
		_ = os.Unsetenv("API_KEY")
		_ = os.Unsetenv("LOG_LEVEL")
		_ = os.Unsetenv("ANALYTICS_PATH")
	}()

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.LLM.APIKey != "gsk-env-key" {
		t.Errorf("Expected LLM API key from env, got '%s'", config.LLM.APIKey)
	}
	if config.Server.APIKey != "bearer-env-key" {
		t.Errorf("Expected server API key from env, got '%s'", config.Server.APIKey)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level debug, got '%s'", config.Logging.Level)
	}
	if config.Audit.StorageType != "file" || config.Audit.FilePath != "./logs/qna.jsonl" {
		t.Errorf("ANALYTICS_PATH should enable the file audit sink, got %q/%q",
			config.Audit.StorageType, config.Audit.FilePath)
	}
}

func TestTemperatureClamped(t *testing.T) {
	configPath := writeConfig(t, `
llm:
  temperature: 1.7
`)

	config, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.LLM.Temperature != 1.0 {
		t.Errorf("Expected temperature clamped to 1.0, got %f", config.LLM.Temperature)
	}
}

func TestValidationErrors(t *testing.T) {
	configPath := writeConfig(t, `
server:
  port: 0
audit:
  storage_type: "redis"
logging:
  level: "verbose"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	for _, field := range []string{"server.port", "audit.storage_type", "logging.level"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestMissingExplicitConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing explicit config path")
	}
}

func TestMaskSensitiveValues(t *testing.T) {
	config := &Config{}
	config.LLM.APIKey = "gsk-1234567890abcdef"
	config.Server.APIKey = "short"

	masked := config.MaskSensitiveValues()
	if masked.LLM.APIKey == config.LLM.APIKey {
		t.Error("LLM API key was not masked")
	}
	if !strings.HasPrefix(masked.LLM.APIKey, "gsk-1234") {
		t.Errorf("Masked key should keep the first 8 characters, got '%s'", masked.LLM.APIKey)
	}
	if masked.Server.APIKey != "*****" {
		t.Errorf("Short values should be fully masked, got '%s'", masked.Server.APIKey)
	}
}
