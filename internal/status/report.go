package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/miridev-mcp/internal/auth"
)

// AuthStatus reports the current sign-in state.
type AuthStatus interface {
	Status(ctx context.Context) auth.Status
}

// HealthProber checks the remote service.
type HealthProber interface {
	Probe(ctx context.Context) Health
}

// Report combines sign-in state, the last deployment and service health.
type Report struct {
	Auth   auth.Status
	Last   *Record
	Health Health
}

// Reporter assembles Reports.
type Reporter struct {
	auth     AuthStatus
	recorder *Recorder
	prober   HealthProber
}

// NewReporter constructs a reporter. A nil prober skips the health check.
func NewReporter(authStatus AuthStatus, recorder *Recorder, prober HealthProber) *Reporter {
	return &Reporter{auth: authStatus, recorder: recorder, prober: prober}
}

// Report gathers the current state.
func (r *Reporter) Report(ctx context.Context) Report {
	var report Report
	if r.auth != nil {
		report.Auth = r.auth.Status(ctx)
	}
	if r.recorder != nil {
		if last, ok := r.recorder.LastDeployment(ctx); ok {
			report.Last = last
		}
	}
	if r.prober != nil {
		report.Health = r.prober.Probe(ctx)
	}

	return report
}

// String renders the report as plain text.
func (r Report) String() string {
	var b strings.Builder

	b.WriteString("Authentication:\n")
	for _, line := range strings.Split(r.Auth.Describe(), "\n") {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("Last deployment:\n")
	if r.Last == nil {
		b.WriteString("  none\n")
	} else {
		fmt.Fprintf(&b, "  URL: %s\n", r.Last.URL)
		fmt.Fprintf(&b, "  Site ID: %s\n", r.Last.SiteID)
		if r.Last.Title != "" {
			fmt.Fprintf(&b, "  Title: %s\n", r.Last.Title)
		}
		fmt.Fprintf(&b, "  Files: %d\n", r.Last.FileCount)
		fmt.Fprintf(&b, "  Deployed at: %s\n", r.Last.DeployedAt.Format("2006-01-02 15:04:05 MST"))
	}

	if r.Health.State != "" {
		b.WriteString("Service:\n")
		switch r.Health.State {
		case HealthUnreachable:
			fmt.Fprintf(&b, "  %s (%s)\n", r.Health.State, r.Health.Error)
		default:
			fmt.Fprintf(&b, "  %s (HTTP %d, %s)\n", r.Health.State, r.Health.StatusCode, r.Health.Latency.Round(time.Millisecond))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
