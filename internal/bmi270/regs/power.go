// internal/bmi270/regs/power.go
package regs

// PwrConf (0x7C, rw). Reset value 0x03.
type PwrConf struct {
	AdvPowerSave   bool // bit 0
	FifoSelfWakeUp bool // bit 1
	FupEn          bool // bit 2
}

// DefaultPwrConf is the reset value of PWR_CONF.
var DefaultPwrConf = PwrConf{AdvPowerSave: true, FifoSelfWakeUp: true}

func (*PwrConf) Address() byte { return AddrPwrConf }

func (r *PwrConf) Decode(b byte) {
	r.AdvPowerSave = bit(b, 0)
	r.FifoSelfWakeUp = bit(b, 1)
	r.FupEn = bit(b, 2)
}

func (r *PwrConf) Encode() byte {
	return putBit(r.AdvPowerSave, 0) | putBit(r.FifoSelfWakeUp, 1) | putBit(r.FupEn, 2)
}

// PwrCtrl (0x7D, rw). Reset value 0x00.
type PwrCtrl struct {
	AuxEn  bool // bit 0
	GyrEn  bool // bit 1
	AccEn  bool // bit 2
	TempEn bool // bit 3
}

func (*PwrCtrl) Address() byte { return AddrPwrCtrl }

func (r *PwrCtrl) Decode(b byte) {
	r.AuxEn = bit(b, 0)
	r.GyrEn = bit(b, 1)
	r.AccEn = bit(b, 2)
	r.TempEn = bit(b, 3)
}

func (r *PwrCtrl) Encode() byte {
	return putBit(r.AuxEn, 0) | putBit(r.GyrEn, 1) | putBit(r.AccEn, 2) | putBit(r.TempEn, 3)
}

// Cmd (0x7E, w). The register is write-only: Decode always yields CmdNone.
type Cmd struct {
	Command Command
}

func (*Cmd) Address() byte { return AddrCmd }

func (r *Cmd) Decode(byte) { r.Command = CmdNone }

func (r *Cmd) Encode() byte { return byte(r.Command) }
