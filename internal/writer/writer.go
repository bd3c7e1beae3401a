// internal/writer/writer.go
package writer

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/tamzrod/bmi270-replicator/internal/poller"
)

// endpointClient is the exact contract the writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type writerImpl struct {
	plan    Plan
	clients map[string]endpointClient
}

func New(plan Plan, clients map[string]endpointClient) Writer {
	return &writerImpl{
		plan:    plan,
		clients: clients,
	}
}

// Write delivers the sample block to every target.
// A failed poll writes nothing: targets keep the last good block.
func (w *writerImpl) Write(res poller.PollResult) error {
	if res.Err != nil {
		return nil
	}

	block := EncodeSample(res)

	var errs error
	for _, tgt := range w.plan.Targets {
		cli := w.clients[tgt.Endpoint]
		if cli == nil {
			errs = multierr.Append(errs, errors.Errorf(
				"writer: missing client for endpoint %s",
				tgt.Endpoint,
			))
			continue
		}

		if err := cli.WriteRegisters(tgt.UnitID, tgt.Address, block); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err,
				"writer: ep=%s unit=%d addr=%d",
				tgt.Endpoint, tgt.UnitID, tgt.Address,
			))
		}
	}

	return errs
}
