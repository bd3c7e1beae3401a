// internal/bus/bus.go

// Package bus is the link between the driver and the sensor.
// It knows nothing about registers; it moves bytes.
package bus

import "time"

// OpKind selects the direction of one phase of a transaction.
type OpKind uint8

const (
	OpWrite OpKind = iota
	OpRead
)

func (k OpKind) String() string {
	if k == OpRead {
		return "read"
	}
	return "write"
}

// Op is one phase of a transaction.
// For OpWrite, Buf is sent. For OpRead, Buf is filled.
type Op struct {
	Kind OpKind
	Buf  []byte
}

// Write builds a write phase.
func Write(p []byte) Op { return Op{Kind: OpWrite, Buf: p} }

// Read builds a read phase.
func Read(p []byte) Op { return Op{Kind: OpRead, Buf: p} }

// Transport is the minimal contract the driver needs from the physical link.
// Each call is one bus transaction (one chip-select assertion on SPI).
// Errors are opaque to the driver and are passed through unchanged.
type Transport interface {
	Write(p []byte) error
	Read(p []byte) error
	Transact(ops []Op) error
}

// Delay is a blocking sleep. clock.Clock satisfies it.
type Delay interface {
	Sleep(d time.Duration)
}
