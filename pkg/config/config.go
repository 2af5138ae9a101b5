package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zen-systems/taskgate/pkg/intent"
)

// Config holds the application configuration.
type Config struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GoogleAPIKey    string
	OllamaHost      string
	Adapter         string
	Model           string
	Threshold       float64
	Workdir         string
	MaxRetries      int
	TraceDir        string
	ConfigDir       string
}

// FileConfig represents the structure of ~/.taskgate/config.yaml
type FileConfig struct {
	APIKeys    APIKeysConfig `yaml:"api_keys"`
	Model      ModelConfig   `yaml:"model"`
	Threshold  *float64      `yaml:"threshold"`
	Workdir    string        `yaml:"workdir"`
	MaxRetries *int          `yaml:"max_retries"`
	TraceDir   string        `yaml:"trace_dir"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	Anthropic string `yaml:"anthropic"`
	OpenAI    string `yaml:"openai"`
	Google    string `yaml:"google"`
}

// ModelConfig selects the fallback model adapter.
type ModelConfig struct {
	Adapter string `yaml:"adapter"`
	Name    string `yaml:"name"`
}

// Default returns the configuration used when no file and no environment
// variables are present.
func Default() *Config {
	return &Config{
		Threshold:  intent.DefaultThreshold,
		Workdir:    ".",
		MaxRetries: 2,
	}
}

// Load reads configuration from ~/.taskgate/config.yaml and environment
// variables. Environment variables take precedence over file configuration.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	cfg, err := LoadFile(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.ConfigDir = configDir
	return cfg, nil
}

// LoadFile reads configuration from the given yaml file, overlaying
// environment variables. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	fileConfig := loadFileConfig(path)
	cfg := Default()

	cfg.AnthropicAPIKey = getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic)
	cfg.OpenAIAPIKey = getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI)
	cfg.GoogleAPIKey = getEnvOrDefault("GOOGLE_API_KEY", fileConfig.APIKeys.Google)
	cfg.OllamaHost = os.Getenv("OLLAMA_HOST")

	cfg.Adapter = fileConfig.Model.Adapter
	cfg.Model = fileConfig.Model.Name
	if fileConfig.Threshold != nil {
		cfg.Threshold = *fileConfig.Threshold
	}
	if fileConfig.Workdir != "" {
		cfg.Workdir = fileConfig.Workdir
	}
	if fileConfig.MaxRetries != nil {
		cfg.MaxRetries = *fileConfig.MaxRetries
	}
	cfg.TraceDir = fileConfig.TraceDir

	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("threshold must be between 0 and 1, got %g", cfg.Threshold)
	}
	return cfg, nil
}

// HasAdapter returns true if the given adapter is usable with the
// configured credentials.
func (c *Config) HasAdapter(name string) bool {
	switch name {
	case "anthropic":
		return c.AnthropicAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	case "google":
		return c.GoogleAPIKey != ""
	case "ollama":
		return true // local, no credentials
	default:
		return false
	}
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg // Return empty config if file doesn't exist
	}

	_ = yaml.Unmarshal(data, cfg) // Ignore parse errors, use defaults
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".taskgate")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
