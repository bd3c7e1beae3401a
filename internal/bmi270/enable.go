// internal/bmi270/enable.go
package bmi270

import (
	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// Enable programs the sampling configuration and powers up the
// accelerometer, gyroscope and temperature sensor.
//
// The write order and the WriteDelay after each write are required by
// the sensor; a write issued too early may be dropped.
func (d *Device) Enable() error {
	acc := d.opts.Accel
	accRange := d.opts.AccelRange
	gyr := d.opts.Gyro
	gyrRange := d.opts.GyroRange

	steps := []regs.Encoder{
		&acc,
		&accRange,
		&gyr,
		&gyrRange,
		&regs.PwrCtrl{AccEn: true, GyrEn: true, TempEn: true},
	}
	for _, r := range steps {
		if err := d.WriteRegister(r); err != nil {
			return err
		}
		if d.opts.WriteDelay > 0 {
			d.delay.Sleep(d.opts.WriteDelay)
		}
	}
	d.log.Debugw("sensors enabled",
		"acc_odr", acc.ODR.String(), "acc_range", accRange.Range.String(),
		"gyr_odr", gyr.ODR.String(), "gyr_range", gyrRange.Range.String())
	return nil
}
