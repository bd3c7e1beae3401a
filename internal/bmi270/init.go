// internal/bmi270/init.go
package bmi270

import (
	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// Init runs the bring-up sequence until the sensor reports a terminal status.
//
// Each attempt runs, in order: chip id probe, power config, upload address,
// firmware upload, init control, status poll. An attempt whose poll sees
// not_init StatusPollCap times in a row restarts from the probe. After
// MaxAttempts such restarts Init returns ErrInitTimeout.
//
// Any other status, including faults such as drv_err, is returned as-is
// with a nil error. A transport error aborts immediately and is returned
// unchanged.
func (d *Device) Init() (regs.InitStatus, error) {
	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		st, done, err := d.initAttempt(attempt)
		if err != nil {
			return regs.NotInit, err
		}
		if done {
			d.log.Debugw("init finished", "attempt", attempt, "status", st.String())
			return st, nil
		}
		d.log.Debugw("status poll cap reached; restarting init", "attempt", attempt, "cap", d.opts.StatusPollCap)
	}
	return regs.NotInit, ErrInitTimeout
}

// initAttempt reports done=false only when the poll cap ran out on not_init.
func (d *Device) initAttempt(attempt int) (regs.InitStatus, bool, error) {
	d.log.Debugw("chip id probe", "attempt", attempt)
	ok, err := d.probe()
	if err != nil {
		return regs.NotInit, false, err
	}
	if !ok {
		return regs.DrvErr, true, nil
	}

	d.log.Debug("power config")
	if err := d.disableAdvPowerSave(); err != nil {
		return regs.NotInit, false, err
	}

	d.log.Debug("init address")
	if err := d.setInitAddr(0); err != nil {
		return regs.NotInit, false, err
	}

	d.log.Debugw("firmware upload", "bytes", len(d.opts.Firmware))
	if err := d.WriteRegister(&regs.InitCtrl{Start: false}); err != nil {
		return regs.NotInit, false, err
	}
	if err := d.burst(regs.AddrInitData, d.opts.Firmware); err != nil {
		return regs.NotInit, false, err
	}

	d.log.Debug("init control")
	if err := d.WriteRegister(&regs.InitCtrl{Start: true}); err != nil {
		return regs.NotInit, false, err
	}
	d.delay.Sleep(d.opts.SettleDelay)

	for i := 0; i < d.opts.StatusPollCap; i++ {
		s, err := d.Status()
		if err != nil {
			return regs.NotInit, false, err
		}
		if !s.Message.Retryable() {
			return s.Message, true, nil
		}
	}
	return regs.NotInit, false, nil
}

// probe reads CHIP_ID twice. The first read switches the sensor's
// interface from I2C auto-detect to SPI and its value is meaningless.
func (d *Device) probe() (bool, error) {
	var id regs.ChipID
	if err := d.ReadRegister(&id); err != nil {
		return false, err
	}

	if d.opts.SoftReset {
		if err := d.WriteRegister(&regs.Cmd{Command: regs.CmdSoftReset}); err != nil {
			return false, err
		}
		d.delay.Sleep(d.opts.SettleDelay)
		// reset drops the interface back to auto-detect
		if err := d.ReadRegister(&id); err != nil {
			return false, err
		}
	}

	if err := d.ReadRegister(&id); err != nil {
		return false, err
	}
	if !id.Matches() {
		d.log.Debugw("unexpected chip id", "got", id.ID, "want", regs.ChipIDValue)
		return false, nil
	}
	return true, nil
}

// disableAdvPowerSave clears PWR_CONF.adv_power_save, keeping the other bits.
// The sensor ignores config uploads in low-power mode.
func (d *Device) disableAdvPowerSave() error {
	var pc regs.PwrConf
	if err := d.ReadRegister(&pc); err != nil {
		return err
	}
	pc.AdvPowerSave = false
	return d.WriteRegister(&pc)
}

// setInitAddr writes both INIT_ADDR registers in one auto-incremented transaction.
func (d *Device) setInitAddr(addr uint16) error {
	lo, hi := regs.SplitInitAddr(addr)
	return d.burst(regs.AddrInitAddr0, []byte{lo.Encode(), hi.Encode()})
}
