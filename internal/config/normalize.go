// internal/config/normalize.go
package config

// Defaults applied by Normalize to zero-valued fields.
const (
	DefaultSpeedHz       = 10_000_000
	DefaultMaxAttempts   = 3
	DefaultStatusPollCap = 10000
	DefaultSettleMs      = 200
	DefaultWriteDelayMs  = 1
	DefaultIntervalMs    = 10
	DefaultAccelODRHz    = 100
	DefaultAccelRangeG   = 2
	DefaultAccelBwp      = "norm_avg4"
	DefaultGyroODRHz     = 200
	DefaultGyroRangeDps  = 2000
	DefaultGyroBwp       = "norm"
	DefaultBeta          = 0.1
	DefaultTimeoutMs     = 1000
	DefaultBaudRate      = 19200
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	for ui := range cfg.Replicator.Units {
		u := &cfg.Replicator.Units[ui]

		// ------------------------------------------------------------
		// SOURCE
		// ------------------------------------------------------------
		if u.Source.SpeedHz == 0 {
			u.Source.SpeedHz = DefaultSpeedHz
		}

		// device_name: ASCII already validated, truncate to 16 characters
		if len(u.Source.DeviceName) > 16 {
			u.Source.DeviceName = u.Source.DeviceName[:16]
		}

		// ------------------------------------------------------------
		// SENSOR
		// ------------------------------------------------------------
		s := &u.Sensor
		setInt(&s.Init.MaxAttempts, DefaultMaxAttempts)
		setInt(&s.Init.StatusPollCap, DefaultStatusPollCap)
		setInt(&s.Init.SettleMs, DefaultSettleMs)
		setInt(&s.WriteDelayMs, DefaultWriteDelayMs)

		if s.Accel.ODRHz == 0 {
			s.Accel.ODRHz = DefaultAccelODRHz
		}
		setInt(&s.Accel.RangeG, DefaultAccelRangeG)
		if s.Accel.Bwp == "" {
			s.Accel.Bwp = DefaultAccelBwp
		}
		setBool(&s.Accel.Performance, true)

		if s.Gyro.ODRHz == 0 {
			s.Gyro.ODRHz = DefaultGyroODRHz
		}
		setInt(&s.Gyro.RangeDps, DefaultGyroRangeDps)
		if s.Gyro.Bwp == "" {
			s.Gyro.Bwp = DefaultGyroBwp
		}
		setBool(&s.Gyro.Performance, true)

		// ------------------------------------------------------------
		// POLL / ESTIMATOR
		// ------------------------------------------------------------
		setInt(&u.Poll.IntervalMs, DefaultIntervalMs)
		if u.Estimator.Beta == 0 {
			u.Estimator.Beta = DefaultBeta
		}

		// ------------------------------------------------------------
		// TARGETS
		// ------------------------------------------------------------
		for ti := range u.Targets {
			t := &u.Targets[ti]
			if t.Protocol == "" {
				t.Protocol = ProtocolModbus
			}
			setInt(&t.TimeoutMs, DefaultTimeoutMs)
			if t.Protocol == ProtocolModbusRTU {
				setInt(&t.Serial.BaudRate, DefaultBaudRate)
				setInt(&t.Serial.DataBits, 8)
				setInt(&t.Serial.StopBits, 1)
				if t.Serial.Parity == "" {
					t.Serial.Parity = "E"
				}
			}
		}
	}
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setBool(v **bool, def bool) {
	if *v == nil {
		b := def
		*v = &b
	}
}
