// internal/bmi270/regs/upload.go
package regs

// Configuration upload registers.

// InitCtrl (0x59, rw). Setting Start makes the device parse the uploaded blob.
type InitCtrl struct {
	Start bool // bit 0
}

func (*InitCtrl) Address() byte { return AddrInitCtrl }

func (r *InitCtrl) Decode(b byte) { r.Start = bit(b, 0) }

func (r *InitCtrl) Encode() byte { return putBit(r.Start, 0) }

// InitAddr0 (0x5B, rw) holds bits 3..0 of the 12-bit upload word address.
type InitAddr0 struct {
	Base0to3 uint8 // bits 0..3
}

func (*InitAddr0) Address() byte { return AddrInitAddr0 }

func (r *InitAddr0) Decode(b byte) { r.Base0to3 = field(b, 0, 4) }

func (r *InitAddr0) Encode() byte { return putField(r.Base0to3, 0, 4) }

// InitAddr1 (0x5C, rw) holds bits 11..4 of the 12-bit upload word address.
type InitAddr1 struct {
	Base4to11 uint8
}

func (*InitAddr1) Address() byte { return AddrInitAddr1 }

func (r *InitAddr1) Decode(b byte) { r.Base4to11 = b }

func (r *InitAddr1) Encode() byte { return r.Base4to11 }

// InitAddrMax is the largest word address the INIT_ADDR pair can hold.
const InitAddrMax uint16 = 1<<12 - 1

// SplitInitAddr splits a 12-bit word address into its INIT_ADDR_0 and INIT_ADDR_1 halves.
// Bits above 11 are dropped.
func SplitInitAddr(addr uint16) (InitAddr0, InitAddr1) {
	addr &= InitAddrMax
	return InitAddr0{Base0to3: uint8(addr & 0x0F)}, InitAddr1{Base4to11: uint8(addr >> 4)}
}

// InitData (0x5E, rw) is the upload data port.
type InitData struct {
	Data byte
}

func (*InitData) Address() byte { return AddrInitData }

func (r *InitData) Decode(b byte) { r.Data = b }

func (r *InitData) Encode() byte { return r.Data }
