// cmd/bmi270-replicator/main_test.go
package main

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
	"github.com/tamzrod/bmi270-replicator/internal/config"
	"github.com/tamzrod/bmi270-replicator/internal/poller"
	"github.com/tamzrod/bmi270-replicator/internal/status"
	"github.com/tamzrod/bmi270-replicator/internal/writer"
)

// fakeRunner emits its results, then blocks until cancelled.
// exited is set only after a short shutdown delay.
type fakeRunner struct {
	results []poller.PollResult
	exited  atomic.Bool
}

func (f *fakeRunner) Run(ctx context.Context, out chan<- poller.PollResult) {
	for _, r := range f.results {
		select {
		case out <- r:
		case <-ctx.Done():
		}
	}
	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)
	f.exited.Store(true)
}

type fakeWriter struct {
	mu   sync.Mutex
	seen []poller.PollResult
}

func (f *fakeWriter) Write(res poller.PollResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, res)
	return nil
}

func (f *fakeWriter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

func testPipeline(t *testing.T, run pollRunner, w writer.Writer, clk clock.Clock) *unitPipeline {
	return &unitPipeline{
		id:     "imu0",
		poll:   run,
		data:   w,
		health: writer.NewHealthReporter(status.NewIndicator(), nil),
		clock:  clk,
		log:    zaptest.NewLogger(t).Sugar(),
	}
}

func TestBuildUnitsClosesBuiltUnitsOnFailure(t *testing.T) {
	var closed []string
	build := func(u config.UnitConfig) (*unitPipeline, func() error, error) {
		if u.ID == "bad" {
			return nil, nil, errors.New("spi: no such port")
		}
		id := u.ID
		return &unitPipeline{id: id}, func() error {
			closed = append(closed, id)
			return nil
		}, nil
	}

	units := []config.UnitConfig{{ID: "a"}, {ID: "b"}, {ID: "bad"}, {ID: "c"}}
	got, closeAll, err := buildUnits(units, build)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no such port")
	test.That(t, got, test.ShouldBeNil)
	test.That(t, closeAll, test.ShouldBeNil)
	test.That(t, closed, test.ShouldResemble, []string{"b", "a"})

	got, closeAll, err = buildUnits(units[:2], build)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(got), test.ShouldEqual, 2)
	closed = nil
	test.That(t, closeAll(), test.ShouldBeNil)
	test.That(t, closed, test.ShouldResemble, []string{"b", "a"})
}

func TestRunUnitsWaitsForPipelines(t *testing.T) {
	r1 := &fakeRunner{}
	r2 := &fakeRunner{}
	mock := clock.NewMock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runUnits(ctx, []*unitPipeline{
			testPipeline(t, r1, &fakeWriter{}, mock),
			testPipeline(t, r2, &fakeWriter{}, mock),
		})
	}()

	cancel()
	test.That(t, <-done, test.ShouldBeNil)
	test.That(t, r1.exited.Load(), test.ShouldBeTrue)
	test.That(t, r2.exited.Load(), test.ShouldBeTrue)
}

func TestPipelineDeliversAndTracksHealth(t *testing.T) {
	w := &fakeWriter{}
	run := &fakeRunner{results: []poller.PollResult{
		{UnitID: "imu0", InitStatus: regs.NotInit, Err: errors.New("poller: init")},
		{UnitID: "imu0", InitStatus: regs.InitOk},
	}}
	mock := clock.NewMock()
	p := testPipeline(t, run, w, mock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runUnits(ctx, []*unitPipeline{p}) }()

	for w.count() < 2 {
		time.Sleep(time.Millisecond)
	}
	// Observe runs right after Write; wait for it to land
	for p.health.Snapshot().Health != status.HealthOK {
		time.Sleep(time.Millisecond)
	}
	s := p.health.Snapshot()
	test.That(t, s.InitStatus, test.ShouldEqual, uint16(regs.InitOk))
	test.That(t, s.LastErrorCode, test.ShouldEqual, uint16(0))

	// the ticker does not count while healthy
	mock.Add(3 * time.Second)
	test.That(t, p.health.Snapshot().SecondsInError, test.ShouldEqual, uint16(0))

	cancel()
	test.That(t, <-done, test.ShouldBeNil)
}
