// internal/status/indicator.go
package status

import "sync"

// Indicator is the health state of one device, shared between the
// sample path and the 1 Hz seconds ticker.
// Every method holds the lock for one read-modify-write and nothing else.
type Indicator struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewIndicator starts in HealthUnknown.
func NewIndicator() *Indicator {
	return &Indicator{snap: Snapshot{Health: HealthUnknown}}
}

// Snapshot returns the current state.
func (in *Indicator) Snapshot() Snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.snap
}

// Observe folds one poll outcome in.
// Success clears the error code and seconds counter; failure records the error code.
// initStatus is always recorded.
func (in *Indicator) Observe(err error, initStatus uint16) (Snapshot, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	prev := in.snap
	if err == nil {
		in.snap.Health = HealthOK
		in.snap.LastErrorCode = 0
		in.snap.SecondsInError = 0
	} else {
		in.snap.Health = HealthError
		in.snap.LastErrorCode = Code(err)
		// seconds_in_error only moves on Tick
	}
	in.snap.InitStatus = initStatus

	return in.snap, in.snap != prev
}

// Tick advances seconds_in_error while the device is not OK.
// The counter saturates; it never wraps.
func (in *Indicator) Tick() (Snapshot, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.snap.Health == HealthOK || in.snap.SecondsInError >= MaxSecondsInError {
		return in.snap, false
	}
	in.snap.SecondsInError++
	return in.snap, true
}
