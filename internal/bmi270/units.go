// internal/bmi270/units.go
package bmi270

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// StandardGravity in m/s².
const StandardGravity = 9.80665

// Scale converts raw counts to SI units.
type Scale struct {
	Accel float64 // m/s² per count
	Gyro  float64 // rad/s per count
}

// NewScale derives the conversion from the configured full-scale ranges.
// A reserved gyro range yields a zero gyro factor.
func NewScale(acc regs.AccRangeMode, gyr regs.GyrRangeMode) Scale {
	return Scale{
		Accel: float64(acc.G()) * StandardGravity / 32768,
		Gyro:  float64(gyr.Dps()) * math.Pi / 180 / 32768,
	}
}

// AccelVector returns the acceleration in m/s².
func (s Scale) AccelVector(a Axes) r3.Vector {
	return r3.Vector{X: float64(a.X) * s.Accel, Y: float64(a.Y) * s.Accel, Z: float64(a.Z) * s.Accel}
}

// GyroVector returns the angular rate in rad/s.
func (s Scale) GyroVector(g Axes) r3.Vector {
	return r3.Vector{X: float64(g.X) * s.Gyro, Y: float64(g.Y) * s.Gyro, Z: float64(g.Z) * s.Gyro}
}
