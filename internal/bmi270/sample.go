// internal/bmi270/sample.go
package bmi270

import (
	"encoding/binary"
	"time"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// dataLen is the accel + gyro payload: six little-endian int16 values.
const dataLen = 12

// Axes is one raw three-axis reading in sensor counts.
type Axes struct {
	X, Y, Z int16
}

// Sample is one accel + gyro reading taken in a single burst,
// so both halves belong to the same sampling instant.
type Sample struct {
	Accel Axes
	Gyro  Axes
}

// Sample reads DATA_8..DATA_19 in one transaction.
func (d *Device) Sample() (Sample, error) {
	w, err := d.window(regs.AddrData0, dataLen)
	if err != nil {
		return Sample{}, err
	}
	return decodeSample(w), nil
}

// decodeSample decodes a raw read window: one latency byte, then the payload.
func decodeSample(w []byte) Sample {
	p := w[1:]
	v := func(i int) int16 { return int16(binary.LittleEndian.Uint16(p[2*i:])) }
	return Sample{
		Accel: Axes{v(0), v(1), v(2)},
		Gyro:  Axes{v(3), v(4), v(5)},
	}
}

// SensorTime is the sensor's free-running 24-bit counter.
type SensorTime uint32

const (
	// SensorTimeMask keeps the 24 counter bits.
	SensorTimeMask SensorTime = 1<<24 - 1

	// SensorTimeTick is one count: 39.0625 µs, rounded down to the nanosecond.
	SensorTimeTick = 39062 * time.Nanosecond
)

// SensorTime reads SENSORTIME_0..2 in one transaction.
func (d *Device) SensorTime() (SensorTime, error) {
	b, err := d.read(regs.AddrSensorTime0, 3)
	if err != nil {
		return 0, err
	}
	return SensorTime(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16), nil
}

// Delta returns the ticks elapsed since prev, modulo the 24-bit wrap.
func (t SensorTime) Delta(prev SensorTime) SensorTime {
	return (t - prev) & SensorTimeMask
}

// Duration converts a tick count to wall time (25.6 kHz counter).
func (t SensorTime) Duration() time.Duration {
	return time.Duration(uint64(t&SensorTimeMask)*78125/2) * time.Nanosecond
}

// Since returns the time elapsed since prev, assuming less than one wrap (~655 s).
func (t SensorTime) Since(prev SensorTime) time.Duration {
	return t.Delta(prev).Duration()
}
