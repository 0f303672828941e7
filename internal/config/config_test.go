package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr() != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr())
	}
	if cfg.WebSocket == nil || !cfg.WebSocket.Enabled {
		t.Error("default config should enable the WebSocket transport")
	}
	if cfg.Observability == nil || cfg.Observability.Metrics == nil || !cfg.Observability.Metrics.Enabled {
		t.Error("default config should enable metrics")
	}
	if cfg.RateLimit != nil {
		t.Error("default config should not rate limit")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  listen_addr: ":9090"
producer:
  unpaced: true
rate_limit:
  runs_per_minute: 10
  burst_size: 3
websocket:
  enabled: true
  path: /stream
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q", cfg.Server.ListenAddr)
	}
	if !cfg.Producer.Unpaced {
		t.Error("Unpaced not set")
	}
	if cfg.RateLimit == nil || cfg.RateLimit.RunsPerMinute != 10 || cfg.RateLimit.BurstSize != 3 {
		t.Errorf("RateLimit = %+v", cfg.RateLimit)
	}
	if cfg.WebSocket.WSPath() != "/stream" {
		t.Errorf("WSPath = %q", cfg.WebSocket.WSPath())
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server": {"listen_addr": ":7070", "enable_docs": true}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":7070" || !cfg.Server.EnableDocs {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MAESTRO_LISTEN_ADDR", ":6060")
	t.Setenv("MAESTRO_UNPACED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ":6060" {
		t.Errorf("ListenAddr = %q, want :6060", cfg.Server.ListenAddr)
	}
	if !cfg.Producer.Unpaced {
		t.Error("MAESTRO_UNPACED ignored")
	}
	if cfg.Observability.Tracing == nil || cfg.Observability.Tracing.Endpoint != "otel:4317" {
		t.Errorf("Tracing = %+v", cfg.Observability.Tracing)
	}
}

func TestProducerConfig_Delays(t *testing.T) {
	var p ProducerConfig
	if p.TickDelay() != 30*time.Millisecond {
		t.Errorf("TickDelay = %v", p.TickDelay())
	}
	if p.SynthesisDelay() != 15*time.Millisecond {
		t.Errorf("SynthesisDelay = %v", p.SynthesisDelay())
	}
	if p.PhaseDelay() != 500*time.Millisecond {
		t.Errorf("PhaseDelay = %v", p.PhaseDelay())
	}

	p.TickDelayMS = 5
	if p.TickDelay() != 5*time.Millisecond {
		t.Errorf("TickDelay override = %v", p.TickDelay())
	}

	p.Unpaced = true
	if p.TickDelay() != 0 || p.SynthesisDelay() != 0 || p.PhaseDelay() != 0 {
		t.Error("Unpaced should zero every delay")
	}
}

func TestWSPath_NilReceiver(t *testing.T) {
	var w *WebSocketConfig
	if w.WSPath() != "/ws" {
		t.Errorf("WSPath = %q, want /ws", w.WSPath())
	}
}
