// internal/ahrs/madgwick.go

// Package ahrs estimates orientation from IMU samples.
package ahrs

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// DefaultBeta is the gradient step gain.
const DefaultBeta = 0.1

// Identity is the starting orientation.
var Identity = quat.Number{Real: 1}

// Madgwick is the gradient-descent orientation filter for a 6-axis IMU.
// The estimate is always a unit quaternion rotating the sensor frame into the earth frame.
type Madgwick struct {
	Beta float64
	q    quat.Number
}

// NewMadgwick returns a filter at the identity orientation.
func NewMadgwick(beta float64) *Madgwick {
	if beta <= 0 {
		beta = DefaultBeta
	}
	return &Madgwick{Beta: beta, q: Identity}
}

// Orientation returns the current estimate.
func (m *Madgwick) Orientation() quat.Number { return m.q }

// Reset returns the estimate to identity.
func (m *Madgwick) Reset() { m.q = Identity }

// Update integrates one sample.
// gyro is in rad/s, accel in any unit (only its direction is used), dt in seconds.
// A zero accel vector skips the correction and integrates the gyro alone.
func (m *Madgwick) Update(gyro, accel r3.Vector, dt float64) quat.Number {
	if dt <= 0 || math.IsNaN(dt) {
		return m.q
	}

	// rate of change from the gyro: ½ q ⊗ ω
	qDot := quat.Scale(0.5, quat.Mul(m.q, quat.Number{Imag: gyro.X, Jmag: gyro.Y, Kmag: gyro.Z}))

	if n := accel.Norm(); n > 0 {
		a := accel.Mul(1 / n)
		step := m.gradient(a)
		if sn := quat.Abs(step); sn > 0 {
			qDot = quat.Sub(qDot, quat.Scale(m.Beta/sn, step))
		}
	}

	q := quat.Add(m.q, quat.Scale(dt, qDot))
	if n := quat.Abs(q); n > 0 {
		m.q = quat.Scale(1/n, q)
	}
	return m.q
}

// gradient is Jᵀf for the gravity objective f, as a quaternion.
func (m *Madgwick) gradient(a r3.Vector) quat.Number {
	f := objective(m.q, a)
	j := jacobian(m.q)

	var g mat.VecDense
	g.MulVec(j.T(), f)
	return quat.Number{Real: g.AtVec(0), Imag: g.AtVec(1), Jmag: g.AtVec(2), Kmag: g.AtVec(3)}
}

// objective is the difference between gravity rotated into the sensor frame and the measured direction.
func objective(q quat.Number, a r3.Vector) *mat.VecDense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewVecDense(3, []float64{
		2*(x*z-w*y) - a.X,
		2*(w*x+y*z) - a.Y,
		2*(0.5-x*x-y*y) - a.Z,
	})
}

func jacobian(q quat.Number) *mat.Dense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 4, []float64{
		-2 * y, 2 * z, -2 * w, 2 * x,
		2 * x, 2 * w, 2 * z, 2 * y,
		0, -4 * x, -4 * y, 0,
	})
}

// Euler returns roll, pitch and yaw in radians (ZYX convention).
func Euler(q quat.Number) (roll, pitch, yaw float64) {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	roll = math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	s := 2 * (w*y - z*x)
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	pitch = math.Asin(s)
	yaw = math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return roll, pitch, yaw
}
