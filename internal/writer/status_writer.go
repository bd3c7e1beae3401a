// internal/writer/status_writer.go
package writer

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/tamzrod/bmi270-replicator/internal/status"
)

// deviceStatusWriter delivers one unit's status block into one status memory.
// Safe for concurrent use: the sample path and the seconds ticker both write.
type deviceStatusWriter struct {
	mu   sync.Mutex
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

// statusFanout writes the same snapshot to every status memory of a unit.
type statusFanout []*deviceStatusWriter

// NewDeviceStatusWriter builds a status writer if status is enabled for the unit.
// If plan.Status is empty, status is disabled.
func NewDeviceStatusWriter(plan Plan, clients map[string]endpointClient) (StatusWriter, bool) {
	if len(plan.Status) == 0 {
		return nil, false
	}

	out := make(statusFanout, 0, len(plan.Status))
	for _, sp := range plan.Status {
		out = append(out, newDeviceStatusWriter(sp, clients[sp.Endpoint]))
	}
	return out, true
}

func newDeviceStatusWriter(sp StatusPlan, cli endpointClient) *deviceStatusWriter {
	return &deviceStatusWriter{
		plan:     sp,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{Health: status.HealthUnknown},
		nameRegs: status.EncodeDeviceName(sp.DeviceName),
	}
}

func (f statusFanout) WriteStatus(s status.Snapshot) error {
	var errs error
	for _, sw := range f {
		errs = multierr.Append(errs, sw.WriteStatus(s))
	}
	return errs
}

// WriteStatus delivers a device status snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.cli == nil {
		return errors.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(unitID, baseAddr, sw.fullBlockRegs(s)); err != nil {
			return errors.Wrap(err, "status writer: full block write failed")
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Changed live slots only
	// ------------------------------------------------------------
	slots := []struct {
		slot uint16
		name string
		prev *uint16
		next uint16
	}{
		{status.SlotHealthCode, "health", &sw.last.Health, s.Health},
		{status.SlotLastErrorCode, "last_error", &sw.last.LastErrorCode, s.LastErrorCode},
		{status.SlotSecondsInError, "seconds_in_error", &sw.last.SecondsInError, s.SecondsInError},
		{status.SlotInitStatus, "init_status", &sw.last.InitStatus, s.InitStatus},
	}

	var errs error
	for _, sl := range slots {
		if *sl.prev == sl.next {
			continue
		}
		if err := sw.cli.WriteRegisters(unitID, baseAddr+sl.slot, []uint16{sl.next}); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "slot%d %s write failed", sl.slot, sl.name))
			continue
		}
		*sl.prev = sl.next
	}

	if errs != nil {
		// Any partial failure introduces doubt: re-assert on next success.
		sw.needFull = true
		return errors.Wrap(errs, "status writer")
	}

	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *deviceStatusWriter) fullBlockRegs(s status.Snapshot) []uint16 {
	regs := status.Encode(s)

	// Device name always lives at the end of the block
	copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)

	return regs
}
