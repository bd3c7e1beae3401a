// internal/writer/builder.go
package writer

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	cfg "github.com/tamzrod/bmi270-replicator/internal/config"
	"github.com/tamzrod/bmi270-replicator/internal/writer/ingest"
	wmodbus "github.com/tamzrod/bmi270-replicator/internal/writer/modbus"
)

// BuildPlan converts one unit config into a Writer Plan.
// Assumes config has already passed validation and normalization.
func BuildPlan(u cfg.UnitConfig) (Plan, error) {
	if u.ID == "" {
		return Plan{}, errors.New("writer: unit.id required")
	}

	plan := Plan{UnitID: u.ID}

	for _, t := range u.Targets {
		plan.Targets = append(plan.Targets, TargetEndpoint{
			TargetID: t.ID,
			Endpoint: t.Endpoint,
			UnitID:   t.UnitID,
			Address:  t.Address,
		})

		// status is opt-in per unit, delivered per target
		if u.Source.StatusSlot != nil && t.StatusUnitID != nil {
			plan.Status = append(plan.Status, StatusPlan{
				Endpoint:   t.Endpoint,
				UnitID:     *t.StatusUnitID,
				BaseSlot:   *u.Source.StatusSlot,
				DeviceName: u.Source.DeviceName,
			})
		}
	}

	return plan, nil
}

type closableClient interface {
	endpointClient
	Close() error
}

// BuildEndpointClients creates one client per unique endpoint.
// Targets sharing an endpoint must share its protocol.
func BuildEndpointClients(u cfg.UnitConfig) (map[string]endpointClient, func() error, error) {
	clients := make(map[string]endpointClient)
	protocols := make(map[string]string)
	var opened []closableClient

	closeAll := func() error {
		var errs error
		for _, c := range opened {
			errs = multierr.Append(errs, c.Close())
		}
		return errs
	}

	for _, t := range u.Targets {
		if p, ok := protocols[t.Endpoint]; ok {
			if p != t.Protocol {
				_ = closeAll()
				return nil, nil, errors.Errorf(
					"writer: endpoint %s used with protocols %s and %s",
					t.Endpoint, p, t.Protocol,
				)
			}
			continue
		}

		c, err := dial(t)
		if err != nil {
			_ = closeAll()
			return nil, nil, errors.Wrapf(err, "writer: unit %q target %d", u.ID, t.ID)
		}
		protocols[t.Endpoint] = t.Protocol
		clients[t.Endpoint] = c
		opened = append(opened, c)
	}

	return clients, closeAll, nil
}

func dial(t cfg.TargetConfig) (closableClient, error) {
	timeout := time.Duration(t.TimeoutMs) * time.Millisecond

	switch t.Protocol {
	case cfg.ProtocolModbus, "":
		return wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: t.Endpoint,
			Timeout:  timeout,
		})
	case cfg.ProtocolModbusRTU:
		return wmodbus.NewRTUEndpointClient(wmodbus.RTUConfig{
			Device:   t.Endpoint,
			BaudRate: t.Serial.BaudRate,
			DataBits: t.Serial.DataBits,
			Parity:   t.Serial.Parity,
			StopBits: t.Serial.StopBits,
			Timeout:  timeout,
		})
	case cfg.ProtocolIngest:
		return ingest.NewEndpointClient(ingest.Config{
			Endpoint: t.Endpoint,
			Timeout:  timeout,
		})
	}
	return nil, errors.Errorf("unknown protocol %q", t.Protocol)
}
