// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
	"github.com/tamzrod/bmi270-replicator/internal/status"
)

// MaxStatusSlot is the last status slot whose block fits the 16-bit register space.
const MaxStatusSlot = 0x10000/status.SlotsPerDevice - 1

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero values mean "use the default" and are accepted here.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	if len(cfg.Replicator.Units) == 0 {
		return errors.New("config: at least one unit required")
	}

	// ------------------------------------------------------------
	// PER-UNIT VALIDATION
	// ------------------------------------------------------------

	seen := make(map[string]struct{})
	for _, u := range cfg.Replicator.Units {
		if u.ID == "" {
			return errors.New("unit: id required")
		}
		if _, dup := seen[u.ID]; dup {
			return errors.Errorf("unit %q: duplicate id", u.ID)
		}
		seen[u.ID] = struct{}{}

		if err := validateSource(u); err != nil {
			return err
		}
		if err := validateSensor(u); err != nil {
			return err
		}
		if u.Poll.IntervalMs < 0 {
			return errors.Errorf("unit %q: poll.interval_ms must be >= 0", u.ID)
		}
		if u.Estimator.Beta < 0 {
			return errors.Errorf("unit %q: estimator.beta must be >= 0", u.ID)
		}
		for _, t := range u.Targets {
			if err := validateTarget(u.ID, t); err != nil {
				return err
			}
		}
	}

	// ------------------------------------------------------------
	// DEVICE STATUS BLOCK VALIDATION (PER-TARGET, OPT-IN)
	// ------------------------------------------------------------

	// key = endpoint | status_unit_id | status_slot
	statusOwner := make(map[string]string)

	for _, u := range cfg.Replicator.Units {
		// status is opt-in
		if u.Source.StatusSlot == nil {
			continue
		}

		// status requires at least one target
		if len(u.Targets) == 0 {
			return errors.Errorf(
				"unit %q: status_slot is set but no targets are defined",
				u.ID,
			)
		}

		slot := *u.Source.StatusSlot

		for _, t := range u.Targets {
			// each target must declare status_unit_id
			if t.StatusUnitID == nil {
				return errors.Errorf(
					"unit %q: status_slot is set but target %q has no status_unit_id",
					u.ID,
					t.Endpoint,
				)
			}

			key := fmt.Sprintf("%s|%d|%d", t.Endpoint, *t.StatusUnitID, slot)

			if prev, exists := statusOwner[key]; exists {
				return errors.Errorf(
					"status_slot collision: endpoint=%s status_unit_id=%d slot=%d used by units %q and %q",
					t.Endpoint,
					*t.StatusUnitID,
					slot,
					prev,
					u.ID,
				)
			}

			statusOwner[key] = u.ID
		}
	}

	// ------------------------------------------------------------
	// DESTINATION MEMORY GEOMETRY VALIDATION
	// ------------------------------------------------------------

	type span struct {
		start uint32
		end   uint32
		unit  string
	}

	// key = endpoint | unit_id
	spans := make(map[string][]span)

	claim := func(endpoint string, unitID uint8, start, end uint32, owner string) error {
		key := fmt.Sprintf("%s|%d", endpoint, unitID)
		for _, s := range spans[key] {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return errors.Errorf(
					"memory overlap: endpoint=%s unit_id=%d range=%d-%d overlaps with %s range=%d-%d",
					endpoint,
					unitID,
					start,
					end,
					s.unit,
					s.start,
					s.end,
				)
			}
		}
		spans[key] = append(spans[key], span{start: start, end: end, unit: owner})
		return nil
	}

	for _, u := range cfg.Replicator.Units {
		for _, t := range u.Targets {
			start := uint32(t.Address)
			end := start + SampleBlockSize - 1
			if end > 0xFFFF {
				return errors.Errorf(
					"unit %q: target %q sample block %d-%d exceeds register space",
					u.ID, t.Endpoint, start, end,
				)
			}
			if err := claim(t.Endpoint, t.UnitID, start, end, fmt.Sprintf("unit=%s sample block", u.ID)); err != nil {
				return err
			}

			// status blocks share the target's register memory namespace
			if u.Source.StatusSlot != nil && t.StatusUnitID != nil {
				sStart := uint32(*u.Source.StatusSlot) * status.SlotsPerDevice
				sEnd := sStart + status.SlotsPerDevice - 1
				if err := claim(t.Endpoint, *t.StatusUnitID, sStart, sEnd, fmt.Sprintf("unit=%s status block", u.ID)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func validateSource(u UnitConfig) error {
	s := u.Source
	if s.Port == "" {
		return errors.Errorf("unit %q: source.port required", u.ID)
	}
	if s.Mode < 0 || s.Mode > 3 {
		return errors.Errorf("unit %q: source.mode %d out of range 0..3", u.ID, s.Mode)
	}
	if s.StatusSlot != nil && *s.StatusSlot > MaxStatusSlot {
		return errors.Errorf("unit %q: source.status_slot %d exceeds %d", u.ID, *s.StatusSlot, MaxStatusSlot)
	}
	if s.SpeedHz < 0 {
		return errors.Errorf("unit %q: source.speed_hz must be >= 0", u.ID)
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(s.DeviceName); i++ {
		if s.DeviceName[i] > 0x7F {
			return errors.Errorf(
				"unit %q: device_name must contain ASCII characters only",
				u.ID,
			)
		}
	}
	return nil
}

func validateSensor(u UnitConfig) error {
	s := u.Sensor

	if s.Init.MaxAttempts < 0 || s.Init.StatusPollCap < 0 || s.Init.SettleMs < 0 || s.WriteDelayMs < 0 {
		return errors.Errorf("unit %q: sensor init and delay values must be >= 0", u.ID)
	}

	if s.Accel.ODRHz != 0 {
		if _, ok := regs.ODRFromHz(s.Accel.ODRHz); !ok {
			return errors.Errorf("unit %q: accel.odr_hz %v is not a supported rate", u.ID, s.Accel.ODRHz)
		}
	}
	if s.Accel.RangeG != 0 {
		if _, ok := regs.AccRangeFromG(s.Accel.RangeG); !ok {
			return errors.Errorf("unit %q: accel.range_g %d must be 2, 4, 8 or 16", u.ID, s.Accel.RangeG)
		}
	}
	if s.Accel.Bwp != "" {
		if _, err := regs.ParseAccBwp(s.Accel.Bwp); err != nil {
			return errors.Wrapf(err, "unit %q: accel.bwp", u.ID)
		}
	}

	if s.Gyro.ODRHz != 0 {
		if _, ok := regs.ODRFromHz(s.Gyro.ODRHz); !ok {
			return errors.Errorf("unit %q: gyro.odr_hz %v is not a supported rate", u.ID, s.Gyro.ODRHz)
		}
	}
	if s.Gyro.RangeDps != 0 {
		if _, ok := regs.GyrRangeFromDps(s.Gyro.RangeDps); !ok {
			return errors.Errorf("unit %q: gyro.range_dps %d must be 125, 250, 500, 1000 or 2000", u.ID, s.Gyro.RangeDps)
		}
	}
	if s.Gyro.Bwp != "" {
		if _, err := regs.ParseGyrBwp(s.Gyro.Bwp); err != nil {
			return errors.Wrapf(err, "unit %q: gyro.bwp", u.ID)
		}
	}
	return nil
}

func validateTarget(unitID string, t TargetConfig) error {
	if t.Endpoint == "" {
		return errors.Errorf("unit %q: target %d endpoint required", unitID, t.ID)
	}
	switch t.Protocol {
	case "", ProtocolModbus, ProtocolIngest:
	case ProtocolModbusRTU:
		switch t.Serial.Parity {
		case "", "N", "E", "O":
		default:
			return errors.Errorf("unit %q: target %q parity %q must be N, E or O", unitID, t.Endpoint, t.Serial.Parity)
		}
	default:
		return errors.Errorf("unit %q: target %q unknown protocol %q", unitID, t.Endpoint, t.Protocol)
	}
	if t.TimeoutMs < 0 {
		return errors.Errorf("unit %q: target %q timeout_ms must be >= 0", unitID, t.Endpoint)
	}
	return nil
}
