// internal/writer/health.go
package writer

import (
	"sync"

	"github.com/tamzrod/bmi270-replicator/internal/status"
)

// HealthReporter owns one unit's health indicator and its status delivery.
//
// The sample path and the seconds ticker both report through it. Each call
// updates the indicator and writes the resulting snapshot under one lock, so
// status memory always receives snapshots in the order the indicator took them.
type HealthReporter struct {
	mu        sync.Mutex
	indicator *status.Indicator
	sw        StatusWriter // nil when status is disabled
}

// NewHealthReporter wraps an indicator. sw may be nil.
func NewHealthReporter(indicator *status.Indicator, sw StatusWriter) *HealthReporter {
	if indicator == nil {
		indicator = status.NewIndicator()
	}
	return &HealthReporter{indicator: indicator, sw: sw}
}

// Snapshot returns the current health state.
func (r *HealthReporter) Snapshot() status.Snapshot {
	return r.indicator.Snapshot()
}

// Assert writes the current snapshot unconditionally.
func (r *HealthReporter) Assert() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(r.indicator.Snapshot(), true)
}

// Observe folds one poll outcome in and writes the snapshot if it changed.
func (r *HealthReporter) Observe(err error, initStatus uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(r.indicator.Observe(err, initStatus))
}

// Tick advances seconds_in_error and writes the snapshot if it changed.
func (r *HealthReporter) Tick() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(r.indicator.Tick())
}

func (r *HealthReporter) write(s status.Snapshot, changed bool) error {
	if r.sw == nil || !changed {
		return nil
	}
	return r.sw.WriteStatus(s)
}
