// internal/bmi270/regs/status.go
package regs

// Read-only identity, status and interrupt registers.

// ChipIDValue is the identity byte of a BMI270.
const ChipIDValue byte = 0x24

// ChipID (0x00, r).
type ChipID struct {
	ID byte
}

func (*ChipID) Address() byte { return AddrChipID }
func (r *ChipID) Decode(b byte) { r.ID = b }
func (r ChipID) Matches() bool { return r.ID == ChipIDValue }

// ErrReg (0x02, r) holds sensor error flags.
type ErrReg struct {
	FatalErr    bool  // bit 0
	InternalErr uint8 // bits 1..4
	FifoErr     bool  // bit 6
	AuxErr      bool  // bit 7
}

func (*ErrReg) Address() byte { return AddrErrReg }

func (r *ErrReg) Decode(b byte) {
	r.FatalErr = bit(b, 0)
	r.InternalErr = field(b, 1, 4)
	r.FifoErr = bit(b, 6)
	r.AuxErr = bit(b, 7)
}

// Status (0x03, r) holds data-ready and busy flags.
type Status struct {
	AuxBusy bool // bit 2
	CmdRdy  bool // bit 4
	DrdyAux bool // bit 5
	DrdyGyr bool // bit 6
	DrdyAcc bool // bit 7
}

func (*Status) Address() byte { return AddrStatus }

func (r *Status) Decode(b byte) {
	r.AuxBusy = bit(b, 2)
	r.CmdRdy = bit(b, 4)
	r.DrdyAux = bit(b, 5)
	r.DrdyGyr = bit(b, 6)
	r.DrdyAcc = bit(b, 7)
}

// SensorTime0 (0x18, r) is bits 7..0 of the 24-bit sensor time.
type SensorTime0 struct{ Value byte }

// SensorTime1 (0x19, r) is bits 15..8 of the 24-bit sensor time.
type SensorTime1 struct{ Value byte }

// SensorTime2 (0x1A, r) is bits 23..16 of the 24-bit sensor time.
type SensorTime2 struct{ Value byte }

func (*SensorTime0) Address() byte { return AddrSensorTime0 }
func (r *SensorTime0) Decode(b byte) { r.Value = b }
func (*SensorTime1) Address() byte { return AddrSensorTime1 }
func (r *SensorTime1) Decode(b byte) { r.Value = b }
func (*SensorTime2) Address() byte { return AddrSensorTime2 }
func (r *SensorTime2) Decode(b byte) { r.Value = b }

// Event (0x1B, r). Reset value 0x01.
type Event struct {
	PorDetected bool      // bit 0
	ErrorCode   ErrorCode // bits 2..3
}

func (*Event) Address() byte { return AddrEvent }

func (r *Event) Decode(b byte) {
	r.PorDetected = bit(b, 0)
	r.ErrorCode = ErrorCode(field(b, 2, 2))
}

// IntStatus0 (0x1C, r) holds feature-engine interrupt flags.
type IntStatus0 struct {
	SigMotion       bool // bit 0
	StepCounter     bool // bit 1
	Activity        bool // bit 2
	WristWearWakeup bool // bit 3
	WristGesture    bool // bit 4
	NoMotion        bool // bit 5
	AnyMotion       bool // bit 6
}

func (*IntStatus0) Address() byte { return AddrIntStatus0 }

func (r *IntStatus0) Decode(b byte) {
	r.SigMotion = bit(b, 0)
	r.StepCounter = bit(b, 1)
	r.Activity = bit(b, 2)
	r.WristWearWakeup = bit(b, 3)
	r.WristGesture = bit(b, 4)
	r.NoMotion = bit(b, 5)
	r.AnyMotion = bit(b, 6)
}

// IntStatus1 (0x1D, r) holds FIFO, error and data-ready interrupt flags.
type IntStatus1 struct {
	FifoFull      bool // bit 0
	FifoWatermark bool // bit 1
	Err           bool // bit 2
	AuxDrdy       bool // bit 5
	GyrDrdy       bool // bit 6
	AccDrdy       bool // bit 7
}

func (*IntStatus1) Address() byte { return AddrIntStatus1 }

func (r *IntStatus1) Decode(b byte) {
	r.FifoFull = bit(b, 0)
	r.FifoWatermark = bit(b, 1)
	r.Err = bit(b, 2)
	r.AuxDrdy = bit(b, 5)
	r.GyrDrdy = bit(b, 6)
	r.AccDrdy = bit(b, 7)
}

// InternalStatus (0x21, r) reports the outcome of the configuration upload.
type InternalStatus struct {
	Message        InitStatus // bits 0..2
	AxesRemapError bool       // bit 5
	Odr50HzError   bool       // bit 6
}

func (*InternalStatus) Address() byte { return AddrInternalStatus }

func (r *InternalStatus) Decode(b byte) {
	r.Message = InitStatus(field(b, 0, 3))
	r.AxesRemapError = bit(b, 5)
	r.Odr50HzError = bit(b, 6)
}

// InternalError (0x5F, r).
type InternalError struct {
	IntErr1         bool // bit 1
	IntErr2         bool // bit 2
	FeatEngDisabled bool // bit 4
}

func (*InternalError) Address() byte { return AddrInternalError }

func (r *InternalError) Decode(b byte) {
	r.IntErr1 = bit(b, 1)
	r.IntErr2 = bit(b, 2)
	r.FeatEngDisabled = bit(b, 4)
}
