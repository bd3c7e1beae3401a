// internal/poller/poller.go
package poller

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tamzrod/bmi270-replicator/internal/ahrs"
	"github.com/tamzrod/bmi270-replicator/internal/bmi270"
	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// Device abstracts the sensor operations the poller needs.
type Device interface {
	Init() (regs.InitStatus, error)
	Enable() error
	Sample() (bmi270.Sample, error)
	SensorTime() (bmi270.SensorTime, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	UnitID   string
	Interval time.Duration
	Scale    bmi270.Scale

	// Estimator is optional. When nil, Orientation stays identity.
	Estimator *ahrs.Madgwick
}

// Poller is a clock-driven reader of one sensor.
//
// The device is brought up lazily: while it is not up, each tick runs
// Init and Enable instead of sampling. A failed sample marks the device
// down so the next tick brings it up again.
type Poller struct {
	cfg   Config
	dev   Device
	clock clock.Clock
	log   *zap.SugaredLogger

	up         bool
	initStatus regs.InitStatus
	prevTime   bmi270.SensorTime
	havePrev   bool
}

// New creates a poller with immutable config.
func New(cfg Config, dev Device, clk clock.Clock, log *zap.SugaredLogger) (*Poller, error) {
	if cfg.UnitID == "" {
		return nil, errors.New("poller: unit id required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if dev == nil {
		return nil, errors.New("poller: device required")
	}
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Poller{cfg: cfg, dev: dev, clock: clk, log: log}, nil
}

// Up reports whether the device is initialized and enabled.
func (p *Poller) Up() bool { return p.up }

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		UnitID:      p.cfg.UnitID,
		At:          p.clock.Now(),
		Orientation: ahrs.Identity,
	}

	if !p.up {
		if err := p.bringUp(); err != nil {
			res.InitStatus = p.initStatus
			res.Err = err
			return res
		}
	}
	res.InitStatus = p.initStatus

	s, err := p.dev.Sample()
	if err != nil {
		p.markDown()
		res.Err = errors.Wrap(err, "poller: sample")
		return res
	}
	t, err := p.dev.SensorTime()
	if err != nil {
		p.markDown()
		res.Err = errors.Wrap(err, "poller: sensor time")
		return res
	}

	// Commit only if all reads succeeded
	res.Sample = s
	res.Time = t
	res.Accel = p.cfg.Scale.AccelVector(s.Accel)
	res.Gyro = p.cfg.Scale.GyroVector(s.Gyro)

	if est := p.cfg.Estimator; est != nil {
		dt := p.cfg.Interval
		if p.havePrev {
			dt = t.Since(p.prevTime)
		}
		res.Orientation = est.Update(res.Gyro, res.Accel, dt.Seconds())
	}
	p.prevTime = t
	p.havePrev = true

	return res
}

func (p *Poller) bringUp() error {
	st, err := p.dev.Init()
	if err != nil {
		p.initStatus = regs.NotInit
		return errors.Wrap(err, "poller: init")
	}
	p.initStatus = st
	if st != regs.InitOk {
		return errors.Wrap(&bmi270.StatusError{Status: st}, "poller: init")
	}
	if err := p.dev.Enable(); err != nil {
		return errors.Wrap(err, "poller: enable")
	}

	p.up = true
	p.havePrev = false
	if p.cfg.Estimator != nil {
		p.cfg.Estimator.Reset()
	}
	p.log.Infow("sensor up", "unit", p.cfg.UnitID)
	return nil
}

func (p *Poller) markDown() {
	if p.up {
		p.log.Warnw("sensor down", "unit", p.cfg.UnitID)
	}
	p.up = false
}
