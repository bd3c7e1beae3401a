// internal/bmi270/regs/regs.go

// Package regs is the BMI270 register map.
//
// Every register is one explicit Go type. Decoding a register never fails:
// each multi-bit field is a typed integer masked to the field width, and every
// enumerated field names all of its bit patterns (reserved ones included), so a
// garbage byte from the bus still maps to a defined value.
//
// Access modes follow the datasheet:
//   - read-only fields are ignored by Encode
//   - write-only fields are left at their reset value by Decode
package regs

// Register is a single byte-wide location on the sensor.
type Register interface {
	Address() byte
}

// Decoder is a register that can be filled from one raw byte read off the bus.
type Decoder interface {
	Register
	Decode(b byte)
}

// Encoder is a register that can be written to the bus.
type Encoder interface {
	Register
	Encode() byte
}

// Register addresses.
const (
	AddrChipID         byte = 0x00
	AddrErrReg         byte = 0x02
	AddrStatus         byte = 0x03
	AddrData0          byte = 0x0C // ACC_X_LSB, first byte of the 12-byte data window
	AddrSensorTime0    byte = 0x18
	AddrSensorTime1    byte = 0x19
	AddrSensorTime2    byte = 0x1A
	AddrEvent          byte = 0x1B
	AddrIntStatus0     byte = 0x1C
	AddrIntStatus1     byte = 0x1D
	AddrInternalStatus byte = 0x21
	AddrAccConf        byte = 0x40
	AddrAccRange       byte = 0x41
	AddrGyrConf        byte = 0x42
	AddrGyrRange       byte = 0x43
	AddrInitCtrl       byte = 0x59
	AddrInitAddr0      byte = 0x5B
	AddrInitAddr1      byte = 0x5C
	AddrInitData       byte = 0x5E
	AddrInternalError  byte = 0x5F
	AddrPwrConf        byte = 0x7C
	AddrPwrCtrl        byte = 0x7D
	AddrCmd            byte = 0x7E
)

// AddrMask keeps the 7-bit register address. The eighth bit is the SPI read flag.
const AddrMask byte = 0x7F

// ReadFlag marks a register access as a read on the SPI interface.
const ReadFlag byte = 0x80

// ---- bit helpers ----

func bit(b byte, n uint) bool {
	return b&(1<<n) != 0
}

func field(b byte, lo, width uint) byte {
	return (b >> lo) & (1<<width - 1)
}

func putBit(v bool, n uint) byte {
	if v {
		return 1 << n
	}
	return 0
}

func putField(v byte, lo, width uint) byte {
	return (v & (1<<width - 1)) << lo
}
