package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/medialib/gallerybot/internal/domain/tier"
)

// Config holds the gallerybot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Database DatabaseConfig `yaml:"database"`
	Ops      OpsConfig      `yaml:"ops"`
	Media    MediaConfig    `yaml:"media"`
	Policy   PolicyConfig   `yaml:"policy"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// TelegramConfig holds bot API settings.
type TelegramConfig struct {
	Token string `yaml:"token"`
}

// DatabaseConfig holds catalog store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// OpsConfig holds the operational HTTP server settings (health, metrics).
type OpsConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// MediaConfig holds the media tree and resolution settings.
type MediaConfig struct {
	Root               string            `yaml:"root"`
	DescriptionLimit   int               `yaml:"description_limit"`
	ThumbnailMaxEdge   int               `yaml:"thumbnail_max_edge"`
	WebPQuality        float32           `yaml:"webp_quality"`
	OriginURLTemplates map[string]string `yaml:"origin_url_templates"`
}

// PolicyConfig holds tier policy settings.
type PolicyConfig struct {
	DefaultTier      string   `yaml:"default_tier"`
	BlockedWords     []string `yaml:"blocked_words"`
	OrientationWords []string `yaml:"orientation_words"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Ops.ReadTimeoutSec <= 0 {
		c.Ops.ReadTimeoutSec = 10
	}
	if c.Ops.WriteTimeoutSec <= 0 {
		c.Ops.WriteTimeoutSec = 10
	}
	if c.Ops.ShutdownSec <= 0 {
		c.Ops.ShutdownSec = 10
	}
	if c.Media.DescriptionLimit <= 0 {
		c.Media.DescriptionLimit = 512
	}
	if c.Media.ThumbnailMaxEdge <= 0 {
		c.Media.ThumbnailMaxEdge = 1024
	}
	if c.Media.WebPQuality <= 0 {
		c.Media.WebPQuality = 90
	}
	if c.Policy.DefaultTier == "" {
		c.Policy.DefaultTier = tier.Safe.String()
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Ops.Port <= 0 || c.Ops.Port > 65535 {
		return fmt.Errorf("ops.port must be between 1 and 65535, got %d", c.Ops.Port)
	}
	if c.Media.Root == "" {
		return fmt.Errorf("media.root is required")
	}
	if _, err := tier.Parse(c.Policy.DefaultTier); err != nil {
		return fmt.Errorf("policy.default_tier: %w", err)
	}
	for name, tmpl := range c.Media.OriginURLTemplates {
		if strings.Count(tmpl, "%d") != 1 {
			return fmt.Errorf("media.origin_url_templates.%s must contain exactly one %%d, got %q", name, tmpl)
		}
	}
	return nil
}

// DefaultTier returns the parsed default tier. Call after Validate.
func (c *Config) DefaultTier() tier.Tier {
	t, err := tier.Parse(c.Policy.DefaultTier)
	if err != nil {
		return tier.Safe
	}
	return t
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
