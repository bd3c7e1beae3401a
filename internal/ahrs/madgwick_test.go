// internal/ahrs/madgwick_test.go
package ahrs

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestStartsAtIdentity(t *testing.T) {
	m := NewMadgwick(0)
	test.That(t, m.Beta, test.ShouldEqual, DefaultBeta)
	test.That(t, m.Orientation(), test.ShouldResemble, Identity)
}

func TestLevelAndStillStaysPut(t *testing.T) {
	m := NewMadgwick(DefaultBeta)
	for i := 0; i < 100; i++ {
		m.Update(r3.Vector{}, r3.Vector{Z: 9.81}, 0.01)
	}
	q := m.Orientation()
	test.That(t, q.Real, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1, 1e-12)
}

func TestGyroOnlyIntegratesYaw(t *testing.T) {
	m := NewMadgwick(DefaultBeta)
	// π/2 rad/s about z for one second, no accel correction
	for i := 0; i < 1000; i++ {
		m.Update(r3.Vector{Z: math.Pi / 2}, r3.Vector{}, 0.001)
	}
	_, _, yaw := Euler(m.Orientation())
	test.That(t, yaw, test.ShouldAlmostEqual, math.Pi/2, 1e-2)
	test.That(t, quat.Abs(m.Orientation()), test.ShouldAlmostEqual, 1, 1e-12)
}

func TestConvergesToTilt(t *testing.T) {
	m := NewMadgwick(0.5)
	// gravity seen along +y: the sensor is rolled by +90°
	for i := 0; i < 5000; i++ {
		m.Update(r3.Vector{}, r3.Vector{Y: 1}, 0.001)
	}
	roll, pitch, _ := Euler(m.Orientation())
	test.That(t, roll, test.ShouldAlmostEqual, math.Pi/2, 1e-2)
	test.That(t, pitch, test.ShouldAlmostEqual, 0, 1e-2)
}

func TestIgnoresBadStep(t *testing.T) {
	m := NewMadgwick(DefaultBeta)
	m.Update(r3.Vector{X: 1}, r3.Vector{Z: 1}, 0)
	m.Update(r3.Vector{X: 1}, r3.Vector{Z: 1}, -1)
	test.That(t, m.Orientation(), test.ShouldResemble, Identity)

	m.Update(r3.Vector{X: 1}, r3.Vector{Z: 1}, 0.1)
	test.That(t, m.Orientation(), test.ShouldNotResemble, Identity)
	m.Reset()
	test.That(t, m.Orientation(), test.ShouldResemble, Identity)
}
