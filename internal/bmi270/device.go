// internal/bmi270/device.go

// Package bmi270 drives a Bosch BMI270 6-axis IMU over a register bus.
//
// A Device exclusively owns its transport for its whole lifetime and is not
// safe for concurrent use. The usual call order is Init, Enable, then Sample
// and SensorTime as often as needed.
//
// Transport errors are returned exactly as the transport produced them.
// Device-reported states are returned as regs.InitStatus values, not errors.
package bmi270

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
	"github.com/tamzrod/bmi270-replicator/internal/bus"
)

// MaxFirmwareSize is the largest image the 12-bit word-addressed upload window can take.
const MaxFirmwareSize = (int(regs.InitAddrMax) + 1) * 2

// Options tunes bring-up and sampling. Start from DefaultOptions.
type Options struct {
	// Init
	MaxAttempts   int           // full sequence restarts before ErrInitTimeout
	StatusPollCap int           // INTERNAL_STATUS reads per attempt
	SettleDelay   time.Duration // after INIT_CTRL=1, and after a soft reset
	SoftReset     bool          // issue CMD=soft_reset during the chip probe

	// Enable
	Accel      regs.AccConf
	AccelRange regs.AccRange
	Gyro       regs.GyrConf
	GyroRange  regs.GyrRange
	WriteDelay time.Duration // after each enable write

	Firmware []byte
	Logger   *zap.SugaredLogger
}

// DefaultOptions returns the bring-up parameters the sensor is known to accept:
// accel 100 Hz / ±2 g, gyro 200 Hz / ±2000 dps.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:   3,
		StatusPollCap: 10000,
		SettleDelay:   200 * time.Millisecond,

		// reset values, except the accel range is narrowed from 8 g
		Accel:      regs.DefaultAccConf,
		AccelRange: regs.AccRange{Range: regs.AccRange2G},
		Gyro:       regs.DefaultGyrConf,
		GyroRange:  regs.DefaultGyrRange,
		WriteDelay: time.Millisecond,

		Firmware: MaxFIFOConfig[:],
	}
}

// Device is a handle on one sensor.
type Device struct {
	tr    bus.Transport
	delay bus.Delay
	opts  Options
	log   *zap.SugaredLogger
}

// New binds a device to its transport and delay source.
func New(tr bus.Transport, delay bus.Delay, opts Options) (*Device, error) {
	if tr == nil {
		return nil, errors.New("bmi270: transport required")
	}
	if delay == nil {
		return nil, errors.New("bmi270: delay required")
	}
	if opts.MaxAttempts < 1 {
		return nil, errors.New("bmi270: max attempts must be >= 1")
	}
	if opts.StatusPollCap < 1 {
		return nil, errors.New("bmi270: status poll cap must be >= 1")
	}
	if len(opts.Firmware) == 0 || len(opts.Firmware) > MaxFirmwareSize {
		return nil, ErrFirmwareSize
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Device{tr: tr, delay: delay, opts: opts, log: log}, nil
}

// ReadRegister fills r from one register read.
func (d *Device) ReadRegister(r regs.Decoder) error {
	b, err := d.read(r.Address(), 1)
	if err != nil {
		return err
	}
	r.Decode(b[0])
	return nil
}

// WriteRegister writes r as [address, value].
func (d *Device) WriteRegister(r regs.Encoder) error {
	return d.tr.Write([]byte{r.Address() & regs.AddrMask, r.Encode()})
}

// Status reads INTERNAL_STATUS.
func (d *Device) Status() (regs.InternalStatus, error) {
	var s regs.InternalStatus
	err := d.ReadRegister(&s)
	return s, err
}

// Scale returns the count-to-SI factors for the configured ranges.
func (d *Device) Scale() Scale {
	return NewScale(d.opts.AccelRange.Range, d.opts.GyroRange.Range)
}

// read returns n payload bytes starting at addr.
func (d *Device) read(addr byte, n int) ([]byte, error) {
	w, err := d.window(addr, n)
	if err != nil {
		return nil, err
	}
	return w[1:], nil
}

// window returns the raw read including the leading latency byte.
func (d *Device) window(addr byte, n int) ([]byte, error) {
	buf := make([]byte, n+1)
	err := d.tr.Transact([]bus.Op{
		bus.Write([]byte{addr&regs.AddrMask | regs.ReadFlag}),
		bus.Read(buf),
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// burst streams data into addr in one transaction; the sensor auto-increments.
func (d *Device) burst(addr byte, data []byte) error {
	return d.tr.Transact([]bus.Op{
		bus.Write([]byte{addr & regs.AddrMask}),
		bus.Write(data),
	})
}
