package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/localsearch/internal/domain"
	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
)

// PathEnv overrides the config file location.
const PathEnv = "LOCALSEARCH_CONFIG"

// Usage store backends.
const (
	UsageMemory = "memory"
	UsageRedis  = "redis"
)

// Config holds the localsearch server configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	Search  SearchConfig  `yaml:"search"`
	Usage   UsageConfig   `yaml:"usage"`
	Redis   RedisConfig   `yaml:"redis"`
	Seeds   SeedsConfig   `yaml:"seeds"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec" validate:"gte=0"`
	WriteTimeoutSec int `yaml:"write_timeout_sec" validate:"gte=0"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec" validate:"gte=0"`
}

// AuthConfig holds API authentication settings.
// api_keys may call every route, search_keys only the read routes.
type AuthConfig struct {
	APIKeys    []string `yaml:"api_keys" validate:"dive,required"`
	SearchKeys []string `yaml:"search_keys" validate:"dive,required"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"` // default: determined by env
}

// SearchConfig holds defaults for every index the server creates.
// Unset params keep their built-in defaults.
type SearchConfig struct {
	Backend                 string   `yaml:"backend" validate:"oneof=linear_map"`
	RelevanceThreshold      *float64 `yaml:"relevance_threshold" validate:"omitempty,gte=0,lte=1"`
	PartialMatchPenaltyRate *float64 `yaml:"partial_match_penalty_rate" validate:"omitempty,gte=0,lte=1"`
	UsePrefixOnly           *bool    `yaml:"use_prefix_only"`
	UseWeightedRatio        *bool    `yaml:"use_weighted_ratio"`
	UseEditDistance         *bool    `yaml:"use_edit_distance"`
	MaxLatencyMs            int      `yaml:"max_latency_ms" validate:"gte=0"`
	MaxResults              int      `yaml:"max_results" validate:"gte=0"`
	QueryCacheSize          int      `yaml:"query_cache_size" validate:"gte=0"`
}

// UsageConfig holds search usage tracking settings.
type UsageConfig struct {
	Backend          string `yaml:"backend" validate:"oneof=memory redis"`
	FlushIntervalSec int    `yaml:"flush_interval_sec" validate:"gte=1"`
	RetentionDays    int    `yaml:"retention_days" validate:"gte=1"`
}

// RedisConfig holds connection settings for the redis usage backend.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs" validate:"dive,hostname_port"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db" validate:"gte=0"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec" validate:"gte=0"`
}

// SeedsConfig lists YAML seed files loaded at startup.
type SeedsConfig struct {
	Paths []string `yaml:"paths" validate:"dive,required"`
	Watch bool     `yaml:"watch"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from the given YAML file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.Backend == "" {
		c.Search.Backend = string(domain.BackendLinearMap)
	}
	if c.Search.QueryCacheSize == 0 {
		c.Search.QueryCacheSize = 256
	}
	if c.Usage.Backend == "" {
		c.Usage.Backend = UsageMemory
	}
	if c.Usage.FlushIntervalSec <= 0 {
		c.Usage.FlushIntervalSec = 10
	}
	if c.Usage.RetentionDays <= 0 {
		c.Usage.RetentionDays = 35
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report YAML field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	if c.Usage.Backend == UsageRedis && len(c.Redis.Addrs) == 0 {
		return errors.New("redis.addrs is required when usage.backend is \"redis\"")
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	if fe.Param() != "" {
		return fmt.Sprintf("%s must satisfy %s=%s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s must satisfy %s, got %v", field, fe.Tag(), fe.Value())
}

// Params returns the search params every new index starts with.
func (s SearchConfig) Params() params.Params {
	p := params.Default()
	if s.RelevanceThreshold != nil {
		p.RelevanceThreshold = *s.RelevanceThreshold
	}
	if s.PartialMatchPenaltyRate != nil {
		p.PartialMatchPenaltyRate = *s.PartialMatchPenaltyRate
	}
	if s.UsePrefixOnly != nil {
		p.UsePrefixOnly = *s.UsePrefixOnly
	}
	if s.UseWeightedRatio != nil {
		p.UseWeightedRatio = *s.UseWeightedRatio
	}
	if s.UseEditDistance != nil {
		p.UseEditDistance = *s.UseEditDistance
	}
	p.MaxLatency = time.Duration(s.MaxLatencyMs) * time.Millisecond
	return p
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}

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
