package status

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/miridev-mcp/library/config"
)

const (
	DefaultServiceURL   = "https://www.miri.dev"
	DefaultProbeTimeout = 5 * time.Second
)

// HealthState summarizes a probe.
type HealthState string

const (
	HealthUp          HealthState = "up"
	HealthDegraded    HealthState = "degraded"
	HealthUnreachable HealthState = "unreachable"
)

// Health is the outcome of one probe.
type Health struct {
	State      HealthState
	StatusCode int
	Latency    time.Duration
	Error      string
}

// Settings configures status reporting.
type Settings struct {
	ServiceURL   string
	ProbeTimeout time.Duration
}

// LoadSettings reads status settings and applies defaults.
func LoadSettings(get config.Getter) Settings {
	return Settings{
		ServiceURL:   config.String(get, "settings.status.service_url", DefaultServiceURL),
		ProbeTimeout: time.Duration(config.Int(get, "settings.status.probe_timeout_seconds", 5)) * time.Second,
	}
}

// Prober checks whether the miri.dev service answers.
type Prober struct {
	url    string
	client *http.Client
}

// NewProber builds a prober. A nil client gets one with settings.ProbeTimeout.
func NewProber(settings Settings, client *http.Client) *Prober {
	if settings.ServiceURL == "" {
		settings.ServiceURL = DefaultServiceURL
	}
	if settings.ProbeTimeout <= 0 {
		settings.ProbeTimeout = DefaultProbeTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: settings.ProbeTimeout}
	}

	return &Prober{url: settings.ServiceURL, client: client}
}

// Probe sends a HEAD request to the service URL.
func (p *Prober) Probe(ctx context.Context) Health {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return Health{State: HealthUnreachable, Error: err.Error()}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Health{State: HealthUnreachable, Latency: time.Since(start), Error: err.Error()}
	}
	defer resp.Body.Close() // nolint: errcheck

	health := Health{State: HealthUp, StatusCode: resp.StatusCode, Latency: time.Since(start)}
	if resp.StatusCode >= 400 {
		health.State = HealthDegraded
	}
	return health
}
