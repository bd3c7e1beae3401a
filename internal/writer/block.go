// internal/writer/block.go
package writer

import (
	"math"

	"github.com/tamzrod/bmi270-replicator/internal/poller"
)

// Sample block layout, one holding register per slot.
const (
	SlotAccelX = iota
	SlotAccelY
	SlotAccelZ
	SlotGyroX
	SlotGyroY
	SlotGyroZ
	SlotTimeLo
	SlotTimeHi
	SlotQuatW
	SlotQuatX
	SlotQuatY
	SlotQuatZ

	SampleBlockSize
)

// QuatScale is the Q14 fixed-point scale of the quaternion slots.
const QuatScale = 1 << 14

// EncodeSample packs one result into the sample block.
// Raw counts are two's complement; sensor time is split low word first.
func EncodeSample(res poller.PollResult) []uint16 {
	regs := make([]uint16, SampleBlockSize)

	s := res.Sample
	regs[SlotAccelX] = uint16(s.Accel.X)
	regs[SlotAccelY] = uint16(s.Accel.Y)
	regs[SlotAccelZ] = uint16(s.Accel.Z)
	regs[SlotGyroX] = uint16(s.Gyro.X)
	regs[SlotGyroY] = uint16(s.Gyro.Y)
	regs[SlotGyroZ] = uint16(s.Gyro.Z)

	regs[SlotTimeLo] = uint16(res.Time)
	regs[SlotTimeHi] = uint16(res.Time >> 16)

	q := res.Orientation
	regs[SlotQuatW] = q14(q.Real)
	regs[SlotQuatX] = q14(q.Imag)
	regs[SlotQuatY] = q14(q.Jmag)
	regs[SlotQuatZ] = q14(q.Kmag)

	return regs
}

func q14(v float64) uint16 {
	f := math.Round(v * QuatScale)
	if f > math.MaxInt16 {
		f = math.MaxInt16
	} else if f < math.MinInt16 {
		f = math.MinInt16
	}
	return uint16(int16(f))
}
