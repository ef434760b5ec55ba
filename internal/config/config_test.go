package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{-1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port

		err := cfg.Validate()
		if err == nil {
			t.Fatalf("expected error for port %d", port)
		}
		if !strings.Contains(err.Error(), "http.port") {
			t.Errorf("error should name http.port: %v", err)
		}
	}
}

func TestValidate_UnknownUsageBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Usage.Backend = "etcd"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown usage backend")
	}
	if !strings.Contains(err.Error(), "usage.backend") {
		t.Errorf("error should name usage.backend: %v", err)
	}
}

func TestValidate_EmptySearchKey(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.SearchKeys = []string{"public", ""}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty search key")
	}

	cfg.Auth.SearchKeys = []string{"public"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnsupportedSearchBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Backend = "inverted_index"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported search backend")
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	cfg := validConfig()
	bad := 1.5
	cfg.Search.RelevanceThreshold = &bad

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for threshold > 1")
	}
	if !strings.Contains(err.Error(), "search.relevance_threshold") {
		t.Errorf("error should name search.relevance_threshold: %v", err)
	}
}

func TestValidate_RedisUsageRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Usage.Backend = UsageRedis

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis usage without addrs")
	}

	cfg.Redis.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg.Logging.Level = "debug"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected read timeout 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.Backend != "linear_map" {
		t.Errorf("expected backend linear_map, got %q", cfg.Search.Backend)
	}
	if cfg.Search.QueryCacheSize != 256 {
		t.Errorf("expected query cache 256, got %d", cfg.Search.QueryCacheSize)
	}
	if cfg.Usage.Backend != UsageMemory {
		t.Errorf("expected usage backend memory, got %q", cfg.Usage.Backend)
	}
	if cfg.Usage.FlushIntervalSec != 10 || cfg.Usage.RetentionDays != 35 {
		t.Errorf("unexpected usage defaults: %+v", cfg.Usage)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 9000, ReadTimeoutSec: 30},
		Usage: UsageConfig{Backend: UsageRedis, FlushIntervalSec: 2},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Usage.Backend != UsageRedis || cfg.Usage.FlushIntervalSec != 2 {
		t.Errorf("usage overridden: %+v", cfg.Usage)
	}
}

func TestSearchConfig_Params(t *testing.T) {
	var s SearchConfig
	p := s.Params()
	if p.RelevanceThreshold != 0.64 || !p.UseWeightedRatio {
		t.Errorf("unset fields must keep defaults: %+v", p)
	}

	threshold := 0.3
	prefixOnly := true
	s = SearchConfig{RelevanceThreshold: &threshold, UsePrefixOnly: &prefixOnly, MaxLatencyMs: 50}
	p = s.Params()
	if p.RelevanceThreshold != 0.3 || !p.UsePrefixOnly {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.MaxLatency != 50*time.Millisecond {
		t.Errorf("MaxLatency = %v, want 50ms", p.MaxLatency)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("LS_TEST_PORT", "9191")

	cfg, err := Parse([]byte(`
http:
  port: ${LS_TEST_PORT}
usage:
  backend: ${LS_TEST_USAGE:-memory}
search:
  relevance_threshold: 0.5
  use_edit_distance: true
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9191 {
		t.Errorf("port = %d, want 9191", cfg.HTTP.Port)
	}
	if cfg.Usage.Backend != UsageMemory {
		t.Errorf("usage backend = %q, want memory", cfg.Usage.Backend)
	}
	p := cfg.Search.Params()
	if p.RelevanceThreshold != 0.5 || !p.UseEditDistance {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_PathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(PathEnv, path)

	cfg, err := Load("ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.HTTP.Port)
	}
}
