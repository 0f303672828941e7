// Package config handles loading and validating Maestro configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func init() {
	// Load .env file if it exists
	_ = godotenv.Load()
}

// Config is the root configuration for Maestro.
type Config struct {
	Server        ServerConfig         `json:"server" yaml:"server"`
	Producer      ProducerConfig       `json:"producer" yaml:"producer"`
	RateLimit     *RateLimitConfig     `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`       // nil = unlimited
	Observability *ObservabilityConfig `json:"observability,omitempty" yaml:"observability,omitempty"` // nil = observability disabled
	WebSocket     *WebSocketConfig     `json:"websocket,omitempty" yaml:"websocket,omitempty"`         // nil = WebSocket transport disabled
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"` // Default: ":8080".
	EnableDocs bool   `json:"enable_docs" yaml:"enable_docs"` // Expose OpenAPI docs.
}

// Addr returns the listen address, defaulting to ":8080".
func (s ServerConfig) Addr() string {
	if s.ListenAddr != "" {
		return s.ListenAddr
	}
	return ":8080"
}

// ProducerConfig configures chunk sizes and stream pacing. Delays are in
// milliseconds; zero values fall back to the live defaults. Unpaced disables
// all delays regardless of the other fields.
type ProducerConfig struct {
	SpecialistChunkSize int  `json:"specialist_chunk_size" yaml:"specialist_chunk_size"` // Default: 50.
	SynthesisChunkSize  int  `json:"synthesis_chunk_size" yaml:"synthesis_chunk_size"`   // Default: 20.
	TickDelayMS         int  `json:"tick_delay_ms" yaml:"tick_delay_ms"`                 // Default: 30.
	SynthesisDelayMS    int  `json:"synthesis_delay_ms" yaml:"synthesis_delay_ms"`       // Default: 15.
	PhaseDelayMS        int  `json:"phase_delay_ms" yaml:"phase_delay_ms"`               // Default: 500.
	Unpaced             bool `json:"unpaced" yaml:"unpaced"`
}

// TickDelay returns the pacing between specialist interleave rounds.
func (p ProducerConfig) TickDelay() time.Duration {
	return p.delay(p.TickDelayMS, 30)
}

// SynthesisDelay returns the pacing between synthesis chunks.
func (p ProducerConfig) SynthesisDelay() time.Duration {
	return p.delay(p.SynthesisDelayMS, 15)
}

// PhaseDelay returns the pause between orchestration phases.
func (p ProducerConfig) PhaseDelay() time.Duration {
	return p.delay(p.PhaseDelayMS, 500)
}

func (p ProducerConfig) delay(ms, def int) time.Duration {
	if p.Unpaced {
		return 0
	}
	if ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return time.Duration(def) * time.Millisecond
}

// RateLimitConfig configures per-session run limiting.
type RateLimitConfig struct {
	RunsPerMinute int `json:"runs_per_minute" yaml:"runs_per_minute"`
	BurstSize     int `json:"burst_size" yaml:"burst_size"`
}

// WebSocketConfig configures the WebSocket stream transport.
type WebSocketConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"` // Default: "/ws".
}

// WSPath returns the WebSocket endpoint path, defaulting to "/ws".
func (w *WebSocketConfig) WSPath() string {
	if w != nil && w.Path != "" {
		return w.Path
	}
	return "/ws"
}

// ObservabilityConfig configures metrics, tracing, and health checks.
// When nil, all observability features are disabled with zero overhead.
type ObservabilityConfig struct {
	Metrics *MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Tracing *TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"` // Default: "/metrics".
}

// TracingConfig configures OpenTelemetry tracing via OTLP.
type TracingConfig struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	ServiceName string  `json:"service_name" yaml:"service_name"` // Default: "maestro".
	Endpoint    string  `json:"endpoint" yaml:"endpoint"`         // OTLP collector endpoint.
	Protocol    string  `json:"protocol" yaml:"protocol"`         // "grpc" (default) or "http".
	Insecure    bool    `json:"insecure" yaml:"insecure"`
	SampleRate  float64 `json:"sample_rate" yaml:"sample_rate"` // 0 to 1. Default: 1.0.
}

// Default returns a configuration suitable for local use: HTTP on :8080,
// WebSocket transport on /ws, metrics enabled, no rate limiting.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{ListenAddr: ":8080", EnableDocs: true},
		WebSocket: &WebSocketConfig{Enabled: true},
		Observability: &ObservabilityConfig{
			Metrics: &MetricsConfig{Enabled: true},
		},
	}
}

// DefaultConfigPath returns the default config file path (~/.maestro/config.yaml).
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "configs/maestro.yaml" // fallback for environments without a home dir
	}
	return filepath.Join(home, ".maestro", "config.yaml")
}

// Load reads a JSON or YAML config file and returns a validated Config.
// The format is detected by file extension: .yml/.yaml for YAML, everything
// else for JSON. An empty path returns the defaults. Environment variables
// take precedence over file values.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		applyEnv(cfg)
		return cfg, nil
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", resolved, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config %s: %w", resolved, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing JSON config %s: %w", resolved, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv applies environment variable overrides — env vars take precedence
// over config file values.
func applyEnv(cfg *Config) {
	if addr := os.Getenv("MAESTRO_LISTEN_ADDR"); addr != "" {
		cfg.Server.ListenAddr = addr
	}
	if v := os.Getenv("MAESTRO_UNPACED"); v != "" {
		if unpaced, err := strconv.ParseBool(v); err == nil {
			cfg.Producer.Unpaced = unpaced
		}
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		if cfg.Observability == nil {
			cfg.Observability = &ObservabilityConfig{}
		}
		if cfg.Observability.Tracing == nil {
			cfg.Observability.Tracing = &TracingConfig{Enabled: true}
		}
		cfg.Observability.Tracing.Endpoint = endpoint
	}
}

// resolvePath expands a leading ~ to the user's home directory.
func resolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
