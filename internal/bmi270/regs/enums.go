// internal/bmi270/regs/enums.go
package regs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Name tables are sized 1<<width so any masked field value indexes them.
// Every entry must be filled, reserved codes included.

// ---- INTERNAL_STATUS.message (3 bits) ----

// InitStatus is the initialization state reported by INTERNAL_STATUS.
type InitStatus uint8

const (
	NotInit InitStatus = iota
	InitOk
	InitErr
	DrvErr
	SnsStop
	NvmError
	StartUpError
	CompatError
)

var initStatusNames = [1 << 3]string{
	"not_init",
	"init_ok",
	"init_err",
	"drv_err",
	"sns_stop",
	"nvm_error",
	"start_up_error",
	"compat_error",
}

func (s InitStatus) String() string { return initStatusNames[s&0x07] }

// Retryable reports whether the device is still working through the configuration blob.
// Every other status is terminal for one init attempt.
func (s InitStatus) Retryable() bool { return s&0x07 == NotInit }

// ---- EVENT.error_code (2 bits) ----

// ErrorCode is the sensor error summary in EVENT.
type ErrorCode uint8

const (
	NoError ErrorCode = iota
	AccErr
	GyrErr
	AccAndGyrErr
)

var errorCodeNames = [1 << 2]string{"no_error", "acc_err", "gyr_err", "acc_and_gyr_err"}

func (c ErrorCode) String() string { return errorCodeNames[c&0x03] }

// ---- ACC_CONF.acc_odr / GYR_CONF.gyr_odr (4 bits) ----

// OutputDataRate is the sampling rate code shared by accelerometer and gyroscope.
type OutputDataRate uint8

const (
	OdrReserved OutputDataRate = iota
	Odr0p78
	Odr1p5
	Odr3p1
	Odr6p25
	Odr12p5
	Odr25
	Odr50
	Odr100
	Odr200
	Odr400
	Odr800
	Odr1k6
	Odr3k2
	Odr6k4
	Odr12k8
)

var odrNames = [1 << 4]string{
	"reserved", "0.78Hz", "1.5Hz", "3.1Hz", "6.25Hz", "12.5Hz", "25Hz", "50Hz",
	"100Hz", "200Hz", "400Hz", "800Hz", "1.6kHz", "3.2kHz", "6.4kHz", "12.8kHz",
}

var odrHz = [1 << 4]float64{
	0, 25.0 / 32, 25.0 / 16, 25.0 / 8, 25.0 / 4, 25.0 / 2, 25, 50,
	100, 200, 400, 800, 1600, 3200, 6400, 12800,
}

func (o OutputDataRate) String() string { return odrNames[o&0x0F] }

// Hz returns the nominal rate. Reserved returns 0.
func (o OutputDataRate) Hz() float64 { return odrHz[o&0x0F] }

// ODRFromHz maps a nominal rate to its code. Rates are matched within 1%.
func ODRFromHz(hz float64) (OutputDataRate, bool) {
	for i := 1; i < len(odrHz); i++ {
		d := hz - odrHz[i]
		if d < 0 {
			d = -d
		}
		if d <= odrHz[i]*0.01 {
			return OutputDataRate(i), true
		}
	}
	return OdrReserved, false
}

// ---- ACC_CONF.acc_bwp (3 bits) ----

// AccBwp is the accelerometer filter bandwidth / averaging setting.
type AccBwp uint8

const (
	AccOsr4Avg1 AccBwp = iota
	AccOsr2Avg2
	AccNormAvg4
	AccCicAvg8
	AccResAvg16
	AccResAvg32
	AccResAvg64
	AccResAvg128
)

var accBwpNames = [1 << 3]string{
	"osr4_avg1", "osr2_avg2", "norm_avg4", "cic_avg8",
	"res_avg16", "res_avg32", "res_avg64", "res_avg128",
}

func (b AccBwp) String() string { return accBwpNames[b&0x07] }

// ParseAccBwp looks up an accelerometer bandwidth by name.
func ParseAccBwp(name string) (AccBwp, error) {
	i, err := lookup(accBwpNames[:], name)
	return AccBwp(i), err
}

// ---- ACC_RANGE.acc_range (2 bits) ----

// AccRangeMode is the accelerometer full-scale range.
type AccRangeMode uint8

const (
	AccRange2G AccRangeMode = iota
	AccRange4G
	AccRange8G
	AccRange16G
)

var accRangeNames = [1 << 2]string{"2g", "4g", "8g", "16g"}

func (r AccRangeMode) String() string { return accRangeNames[r&0x03] }

// G returns the full-scale range in g.
func (r AccRangeMode) G() int { return 2 << (r & 0x03) }

// AccRangeFromG maps a full-scale range in g to its code.
func AccRangeFromG(g int) (AccRangeMode, bool) {
	for r := AccRange2G; r <= AccRange16G; r++ {
		if r.G() == g {
			return r, true
		}
	}
	return AccRange2G, false
}

// ---- GYR_CONF.gyr_bwp (2 bits) ----

// GyrBwp is the gyroscope filter bandwidth setting.
type GyrBwp uint8

const (
	GyrOsr4 GyrBwp = iota
	GyrOsr2
	GyrNorm
	GyrReserved
)

var gyrBwpNames = [1 << 2]string{"osr4", "osr2", "norm", "reserved"}

func (b GyrBwp) String() string { return gyrBwpNames[b&0x03] }

// ParseGyrBwp looks up a gyroscope bandwidth by name. The reserved code is rejected.
func ParseGyrBwp(name string) (GyrBwp, error) {
	i, err := lookup(gyrBwpNames[:GyrReserved], name)
	return GyrBwp(i), err
}

// ---- GYR_RANGE.gyr_range (3 bits) ----

// GyrRangeMode is the gyroscope full-scale range.
type GyrRangeMode uint8

const (
	GyrRange2000 GyrRangeMode = iota
	GyrRange1000
	GyrRange500
	GyrRange250
	GyrRange125
	GyrRangeReserved0
	GyrRangeReserved1
	GyrRangeReserved2
)

var gyrRangeNames = [1 << 3]string{
	"2000dps", "1000dps", "500dps", "250dps", "125dps",
	"reserved0", "reserved1", "reserved2",
}

func (r GyrRangeMode) String() string { return gyrRangeNames[r&0x07] }

// Dps returns the full-scale range in degrees per second, or 0 for reserved codes.
func (r GyrRangeMode) Dps() int {
	if r&0x07 > GyrRange125 {
		return 0
	}
	return 2000 >> (r & 0x07)
}

// GyrRangeFromDps maps a full-scale range in degrees per second to its code.
func GyrRangeFromDps(dps int) (GyrRangeMode, bool) {
	for r := GyrRange2000; r <= GyrRange125; r++ {
		if r.Dps() == dps {
			return r, true
		}
	}
	return GyrRange2000, false
}

// ---- GYR_RANGE.ois_range (1 bit) ----

// OisRange is the range of the OIS data path.
type OisRange uint8

const (
	OisRange250 OisRange = iota
	OisRange2000
)

var oisRangeNames = [1 << 1]string{"250dps", "2000dps"}

func (r OisRange) String() string { return oisRangeNames[r&0x01] }

// ---- CMD (8 bits, write-only) ----

// Command is a value for the CMD register. Every byte is a valid Command;
// the named ones are the documented commands.
type Command uint8

const (
	CmdNone      Command = 0x00
	CmdGTrigger  Command = 0x02
	CmdUsrGain   Command = 0x03
	CmdNvmProg   Command = 0xA0
	CmdFifoFlush Command = 0xB0
	CmdSoftReset Command = 0xB6
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdGTrigger:
		return "g_trigger"
	case CmdUsrGain:
		return "usr_gain"
	case CmdNvmProg:
		return "nvm_prog"
	case CmdFifoFlush:
		return "fifo_flush"
	case CmdSoftReset:
		return "soft_reset"
	}
	return fmt.Sprintf("cmd(0x%02X)", uint8(c))
}

func lookup(names []string, name string) (int, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range names {
		if v == n {
			return i, nil
		}
	}
	return 0, errors.Errorf("regs: unknown value %q (want one of %s)", name, strings.Join(names, ", "))
}
