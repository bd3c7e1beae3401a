// cmd/bmi270-replicator/main.go
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"periph.io/x/host/v3"

	"github.com/tamzrod/bmi270-replicator/internal/ahrs"
	"github.com/tamzrod/bmi270-replicator/internal/config"
	"github.com/tamzrod/bmi270-replicator/internal/logging"
	"github.com/tamzrod/bmi270-replicator/internal/poller"
	"github.com/tamzrod/bmi270-replicator/internal/status"
	"github.com/tamzrod/bmi270-replicator/internal/writer"
)

func main() {
	app := &cli.App{
		Name:  "bmi270-replicator",
		Usage: "poll BMI270 sensors over SPI and replicate samples into register memories",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to the YAML config",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override log.level from the config",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "poll every unit once, print the result and exit",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// --------------------
	// Load + validate config
	// --------------------
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	config.Normalize(cfg)

	level := cfg.Log.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	log, err := logging.New(level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init failed")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New()

	if c.Bool("dry-run") {
		return dryRun(cfg, clk, log)
	}

	// --------------------
	// Build per-unit pipelines
	// --------------------
	// Every unit is built before any goroutine starts, so a failed build
	// leaves nothing running on the ports it closes.
	units, closeAll, err := buildUnits(cfg.Replicator.Units, func(u config.UnitConfig) (*unitPipeline, func() error, error) {
		return newUnitPipeline(u, clk, log)
	})
	if err != nil {
		return err
	}

	err = runUnits(ctx, units)
	log.Info("shutting down")

	// ports close only after every pipeline goroutine has returned
	if cerr := closeAll(); cerr != nil {
		log.Warnw("close failed", "error", cerr)
	}
	return err
}

// pollRunner is the part of *poller.Poller a pipeline drives.
type pollRunner interface {
	Run(ctx context.Context, out chan<- poller.PollResult)
}

// unitPipeline is the runner-owned state of one unit: the poller, data
// delivery, and the health reporter shared by the sample path and the
// seconds ticker.
type unitPipeline struct {
	id     string
	poll   pollRunner
	data   writer.Writer
	health *writer.HealthReporter
	clock  clock.Clock
	log    *zap.SugaredLogger
}

func newUnitPipeline(unit config.UnitConfig, clk clock.Clock, log *zap.SugaredLogger) (*unitPipeline, func() error, error) {
	p, closePoller, err := poller.Build(unit, clk, log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "poller build failed")
	}

	plan, err := writer.BuildPlan(unit)
	if err != nil {
		_ = closePoller()
		return nil, nil, errors.Wrapf(err, "writer plan failed (unit=%s)", unit.ID)
	}

	// DATA + STATUS share the per-endpoint clients
	clients, closeWriters, err := writer.BuildEndpointClients(unit)
	if err != nil {
		_ = closePoller()
		return nil, nil, errors.Wrapf(err, "writer clients failed (unit=%s)", unit.ID)
	}

	sw, statusEnabled := writer.NewDeviceStatusWriter(plan, clients)

	log.Infow("unit built", "unit", unit.ID, "targets", len(plan.Targets), "status", statusEnabled)
	return &unitPipeline{
			id:     unit.ID,
			poll:   p,
			data:   writer.New(plan, clients),
			health: writer.NewHealthReporter(status.NewIndicator(), sw),
			clock:  clk,
			log:    log.With("unit", unit.ID),
		}, func() error {
			return multierr.Combine(closeWriters(), closePoller())
		}, nil
}

// buildUnits builds every unit or none: on the first failure the units
// already built are closed again.
func buildUnits(
	units []config.UnitConfig,
	build func(config.UnitConfig) (*unitPipeline, func() error, error),
) ([]*unitPipeline, func() error, error) {
	var (
		out     []*unitPipeline
		closers []func() error
	)
	closeAll := func() error {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i]())
		}
		return errs
	}

	for _, u := range units {
		p, closeUnit, err := build(u)
		if err != nil {
			return nil, nil, multierr.Append(err, closeAll())
		}
		out = append(out, p)
		closers = append(closers, closeUnit)
	}
	return out, closeAll, nil
}

// runUnits runs every pipeline until ctx is cancelled and returns once
// all of their goroutines have exited.
func runUnits(ctx context.Context, units []*unitPipeline) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, u := range units {
		u := u
		out := make(chan poller.PollResult)
		g.Go(func() error {
			u.poll.Run(ctx, out)
			return nil
		})
		g.Go(func() error {
			u.consume(ctx, out)
			return nil
		})
		g.Go(func() error {
			u.tick(ctx)
			return nil
		})
		u.log.Info("unit started")
	}
	return g.Wait()
}

func (u *unitPipeline) consume(ctx context.Context, in <-chan poller.PollResult) {
	// Full block write on start (identity re-assert) if enabled.
	if err := u.health.Assert(); err != nil {
		u.log.Warnw("status write failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case res := <-in:
			if res.Err != nil {
				u.log.Debugw("poll failed", "init_status", res.InitStatus.String(), "error", res.Err)
			}
			if err := u.data.Write(res); err != nil {
				u.log.Warnw("writer error", "error", err)
			}
			if err := u.health.Observe(res.Err, uint16(res.InitStatus)); err != nil {
				u.log.Warnw("status write failed", "error", err)
			}
		}
	}
}

// tick advances seconds_in_error at 1 Hz while the unit is not OK.
func (u *unitPipeline) tick(ctx context.Context) {
	t := u.clock.Ticker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := u.health.Tick(); err != nil {
				u.log.Warnw("status seconds tick write failed", "error", err)
			}
		}
	}
}

func dryRun(cfg *config.Config, clk clock.Clock, log *zap.SugaredLogger) error {
	var errs error
	for _, unit := range cfg.Replicator.Units {
		p, closePoller, err := poller.Build(unit, clk, log)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		res := p.PollOnce()
		errs = multierr.Append(errs, closePoller())

		fmt.Printf("unit %s: init_status=%s\n", unit.ID, res.InitStatus)
		if res.Err != nil {
			fmt.Printf("  error: %v (code 0x%04X)\n", res.Err, status.Code(res.Err))
			errs = multierr.Append(errs, res.Err)
			continue
		}

		roll, pitch, yaw := ahrs.Euler(res.Orientation)
		fmt.Printf("  accel raw=%+v m/s2=(%.3f %.3f %.3f)\n",
			res.Sample.Accel, res.Accel.X, res.Accel.Y, res.Accel.Z)
		fmt.Printf("  gyro  raw=%+v rad/s=(%.4f %.4f %.4f)\n",
			res.Sample.Gyro, res.Gyro.X, res.Gyro.Y, res.Gyro.Z)
		fmt.Printf("  sensor_time=%d\n", res.Time)
		fmt.Printf("  roll=%.1f pitch=%.1f yaw=%.1f deg\n", deg(roll), deg(pitch), deg(yaw))
	}
	return errs
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }
