// internal/writer/types.go
package writer

import (
	"github.com/tamzrod/bmi270-replicator/internal/poller"
	"github.com/tamzrod/bmi270-replicator/internal/status"
)

// TargetEndpoint is one target register memory for the sample block.
type TargetEndpoint struct {
	TargetID uint32
	Endpoint string
	UnitID   uint8
	Address  uint16
}

// StatusPlan is one status block destination.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// Plan is the fully-built write plan for one unit.
type Plan struct {
	UnitID  string
	Targets []TargetEndpoint

	// Status is empty when the unit did not opt in.
	Status []StatusPlan
}

// Writer writes poll snapshots into targets.
type Writer interface {
	Write(res poller.PollResult) error
}

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}
