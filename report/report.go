// Package report records what a driver run observed: one Report per run,
// one ScenarioResult per scenario.  Reports encode to JSON with sonnet and
// persist to a SQLite history file through Store.
package report

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/sugawarayuuta/sonnet"
)

// ErrDecode wraps malformed report input.
var ErrDecode = errors.New("report: decode failed")

// Host describes the machine a run executed on.
type Host struct {
	Hostname  string `json:"hostname"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	CPUs      int    `json:"cpus"`
	GoVersion string `json:"go_version"`
}

// CurrentHost fills Host from the running process.  A failed hostname
// lookup leaves Hostname empty.
func CurrentHost() Host {
	name, _ := os.Hostname()
	return Host{
		Hostname:  name,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
}

// ScenarioResult is one scenario's outcome.  Detail holds the scenario's
// typed result; after a round trip through Decode or Store it is the
// generic JSON form (map[string]any).
type ScenarioResult struct {
	Name    string        `json:"name"`
	Passed  bool          `json:"passed"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Detail  any           `json:"detail,omitempty"`
}

// Report is one driver run.
type Report struct {
	RunID     string           `json:"run_id"`
	StartedAt time.Time        `json:"started_at"`
	Host      Host             `json:"host"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// New starts an empty report with a fresh run ID.
func New(startedAt time.Time) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: startedAt.UTC(),
		Host:      CurrentHost(),
	}
}

// Add appends a scenario outcome.
func (r *Report) Add(s ScenarioResult) {
	r.Scenarios = append(r.Scenarios, s)
}

// Passed reports whether every scenario passed.  An empty report passes.
func (r *Report) Passed() bool {
	for i := range r.Scenarios {
		if !r.Scenarios[i].Passed {
			return false
		}
	}
	return true
}

// Failed lists the names of failed scenarios in run order.
func (r *Report) Failed() []string {
	var names []string
	for i := range r.Scenarios {
		if !r.Scenarios[i].Passed {
			names = append(names, r.Scenarios[i].Name)
		}
	}
	return names
}

// Encode renders r as compact JSON.
func Encode(r *Report) ([]byte, error) {
	b, err := sonnet.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("report: encode: %w", err)
	}
	return b, nil
}

// Decode parses JSON produced by Encode.  The run ID must be a UUID.
func Decode(b []byte) (*Report, error) {
	var r Report
	if err := sonnet.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if _, err := uuid.Parse(r.RunID); err != nil {
		return nil, fmt.Errorf("%w: run_id %q: %v", ErrDecode, r.RunID, err)
	}
	return &r, nil
}
