// internal/poller/types.go
package poller

import (
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270"
	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	UnitID string
	At     time.Time

	// InitStatus is the outcome of the most recent bring-up.
	// It stays init_ok while the device is up.
	InitStatus regs.InitStatus

	Sample bmi270.Sample
	Time   bmi270.SensorTime

	// SI values and orientation, filled only when Err is nil.
	Accel       r3.Vector // m/s²
	Gyro        r3.Vector // rad/s
	Orientation quat.Number

	Err error // non-nil means the poll cycle failed
}
