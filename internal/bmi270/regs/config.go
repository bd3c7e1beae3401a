// internal/bmi270/regs/config.go
package regs

// Sampling configuration registers. All fields are read-write.

// AccConf (0x40, rw). Reset value 0xA8.
type AccConf struct {
	ODR        OutputDataRate // bits 0..3
	Bwp        AccBwp         // bits 4..6
	FilterPerf bool           // bit 7
}

// DefaultAccConf is the reset value of ACC_CONF: 100 Hz, normal mode, averaging 4, performance filter.
var DefaultAccConf = AccConf{ODR: Odr100, Bwp: AccNormAvg4, FilterPerf: true}

func (*AccConf) Address() byte { return AddrAccConf }

func (r *AccConf) Decode(b byte) {
	r.ODR = OutputDataRate(field(b, 0, 4))
	r.Bwp = AccBwp(field(b, 4, 3))
	r.FilterPerf = bit(b, 7)
}

func (r *AccConf) Encode() byte {
	return putField(byte(r.ODR), 0, 4) | putField(byte(r.Bwp), 4, 3) | putBit(r.FilterPerf, 7)
}

// AccRange (0x41, rw). Reset value 0x02.
type AccRange struct {
	Range AccRangeMode // bits 0..1
}

// DefaultAccRange is the reset value of ACC_RANGE.
var DefaultAccRange = AccRange{Range: AccRange8G}

func (*AccRange) Address() byte { return AddrAccRange }

func (r *AccRange) Decode(b byte) { r.Range = AccRangeMode(field(b, 0, 2)) }

func (r *AccRange) Encode() byte { return putField(byte(r.Range), 0, 2) }

// GyrConf (0x42, rw). Reset value 0xA9.
type GyrConf struct {
	ODR        OutputDataRate // bits 0..3
	Bwp        GyrBwp         // bits 4..5
	NoisePerf  bool           // bit 6
	FilterPerf bool           // bit 7
}

// DefaultGyrConf is the reset value of GYR_CONF: 200 Hz, normal filter, performance filter.
var DefaultGyrConf = GyrConf{ODR: Odr200, Bwp: GyrNorm, FilterPerf: true}

func (*GyrConf) Address() byte { return AddrGyrConf }

func (r *GyrConf) Decode(b byte) {
	r.ODR = OutputDataRate(field(b, 0, 4))
	r.Bwp = GyrBwp(field(b, 4, 2))
	r.NoisePerf = bit(b, 6)
	r.FilterPerf = bit(b, 7)
}

func (r *GyrConf) Encode() byte {
	return putField(byte(r.ODR), 0, 4) | putField(byte(r.Bwp), 4, 2) |
		putBit(r.NoisePerf, 6) | putBit(r.FilterPerf, 7)
}

// GyrRange (0x43, rw). Reset value 0x00.
type GyrRange struct {
	Range    GyrRangeMode // bits 0..2
	OisRange OisRange     // bit 3
}

// DefaultGyrRange is the reset value of GYR_RANGE.
var DefaultGyrRange = GyrRange{Range: GyrRange2000, OisRange: OisRange250}

func (*GyrRange) Address() byte { return AddrGyrRange }

func (r *GyrRange) Decode(b byte) {
	r.Range = GyrRangeMode(field(b, 0, 3))
	r.OisRange = OisRange(field(b, 3, 1))
}

func (r *GyrRange) Encode() byte {
	return putField(byte(r.Range), 0, 3) | putField(byte(r.OisRange), 3, 1)
}
