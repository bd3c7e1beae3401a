// internal/poller/builder.go
package poller

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"
	pspi "periph.io/x/conn/v3/spi"

	"github.com/tamzrod/bmi270-replicator/internal/ahrs"
	"github.com/tamzrod/bmi270-replicator/internal/bmi270"
	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
	"github.com/tamzrod/bmi270-replicator/internal/bus"
	"github.com/tamzrod/bmi270-replicator/internal/bus/spi"
	cfg "github.com/tamzrod/bmi270-replicator/internal/config"
)

// BuildOptions converts a normalized unit config into driver options.
func BuildOptions(u cfg.UnitConfig) (bmi270.Options, error) {
	s := u.Sensor
	opts := bmi270.DefaultOptions()

	opts.MaxAttempts = s.Init.MaxAttempts
	opts.StatusPollCap = s.Init.StatusPollCap
	opts.SettleDelay = time.Duration(s.Init.SettleMs) * time.Millisecond
	opts.SoftReset = s.Init.SoftReset
	opts.WriteDelay = time.Duration(s.WriteDelayMs) * time.Millisecond

	odr, ok := regs.ODRFromHz(s.Accel.ODRHz)
	if !ok {
		return opts, errors.Errorf("poller: unit %q: accel odr %v", u.ID, s.Accel.ODRHz)
	}
	bwp, err := regs.ParseAccBwp(s.Accel.Bwp)
	if err != nil {
		return opts, errors.Wrapf(err, "poller: unit %q: accel", u.ID)
	}
	rng, ok := regs.AccRangeFromG(s.Accel.RangeG)
	if !ok {
		return opts, errors.Errorf("poller: unit %q: accel range %d", u.ID, s.Accel.RangeG)
	}
	opts.Accel = regs.AccConf{ODR: odr, Bwp: bwp, FilterPerf: boolOr(s.Accel.Performance, true)}
	opts.AccelRange = regs.AccRange{Range: rng}

	godr, ok := regs.ODRFromHz(s.Gyro.ODRHz)
	if !ok {
		return opts, errors.Errorf("poller: unit %q: gyro odr %v", u.ID, s.Gyro.ODRHz)
	}
	gbwp, err := regs.ParseGyrBwp(s.Gyro.Bwp)
	if err != nil {
		return opts, errors.Wrapf(err, "poller: unit %q: gyro", u.ID)
	}
	grng, ok := regs.GyrRangeFromDps(s.Gyro.RangeDps)
	if !ok {
		return opts, errors.Errorf("poller: unit %q: gyro range %d", u.ID, s.Gyro.RangeDps)
	}
	opts.Gyro = regs.GyrConf{
		ODR:        godr,
		Bwp:        gbwp,
		NoisePerf:  s.Gyro.NoisePerformance,
		FilterPerf: boolOr(s.Gyro.Performance, true),
	}
	opts.GyroRange = regs.GyrRange{Range: grng}

	return opts, nil
}

// BuildWith constructs a Poller over an already open transport.
// delay paces the driver; clk drives the poll ticker.
func BuildWith(u cfg.UnitConfig, tr bus.Transport, delay bus.Delay, clk clock.Clock, log *zap.SugaredLogger) (*Poller, error) {
	opts, err := BuildOptions(u)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	opts.Logger = log.With("unit", u.ID)

	dev, err := bmi270.New(tr, delay, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "poller: unit %q", u.ID)
	}

	pc := Config{
		UnitID:   u.ID,
		Interval: time.Duration(u.Poll.IntervalMs) * time.Millisecond,
		Scale:    dev.Scale(),
	}
	if u.Estimator.Enabled {
		pc.Estimator = ahrs.NewMadgwick(u.Estimator.Beta)
	}
	return New(pc, dev, clk, log)
}

// Build opens the unit's SPI port and constructs its Poller.
// The device is not touched until the first tick.
// host.Init must have run before.
func Build(u cfg.UnitConfig, clk clock.Clock, log *zap.SugaredLogger) (*Poller, func() error, error) {
	client, err := spi.Open(spi.Config{
		Port:      u.Source.Port,
		Frequency: physic.Frequency(u.Source.SpeedHz) * physic.Hertz,
		Mode:      pspi.Mode(u.Source.Mode),
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "poller: unit %q", u.ID)
	}

	p, err := BuildWith(u, client, clk, clk, log)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return p, client.Close, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
