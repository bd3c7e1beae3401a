// internal/writer/health_test.go
package writer

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/tamzrod/bmi270-replicator/internal/status"
)

// gatedStatusWriter records snapshots. When armed, the next write signals
// entered and blocks until release is closed.
type gatedStatusWriter struct {
	mu      sync.Mutex
	writes  []status.Snapshot
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStatusWriter) arm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entered = make(chan struct{})
	g.release = make(chan struct{})
}

func (g *gatedStatusWriter) WriteStatus(s status.Snapshot) error {
	g.mu.Lock()
	entered, release := g.entered, g.release
	g.entered, g.release = nil, nil
	g.mu.Unlock()

	if entered != nil {
		close(entered)
		<-release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes = append(g.writes, s)
	return nil
}

func (g *gatedStatusWriter) last() status.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.writes[len(g.writes)-1]
}

func TestHealthReporter_TickCannotOverwriteRecovery(t *testing.T) {
	sw := &gatedStatusWriter{}
	r := NewHealthReporter(status.NewIndicator(), sw)

	test.That(t, r.Observe(errors.New("spi: timeout"), 0), test.ShouldBeNil)

	// ticker is mid-write with {Error, 1s}
	sw.arm()
	entered, release := sw.entered, sw.release
	tickDone := make(chan error, 1)
	go func() { tickDone <- r.Tick() }()
	<-entered

	// recovery arrives while the tick write is in flight
	observeDone := make(chan error, 1)
	go func() { observeDone <- r.Observe(nil, 1) }()

	select {
	case <-observeDone:
		t.Fatal("recovery write overtook an in-flight tick write")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	test.That(t, <-tickDone, test.ShouldBeNil)
	test.That(t, <-observeDone, test.ShouldBeNil)

	test.That(t, sw.last().Health, test.ShouldEqual, status.HealthOK)
	test.That(t, sw.last(), test.ShouldResemble, r.Snapshot())
}

func TestHealthReporter_StatusBlockFollowsIndicator(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, _ := NewDeviceStatusWriter(statusPlan(), map[string]endpointClient{"status-endpoint": cli})
	r := NewHealthReporter(status.NewIndicator(), sw)

	test.That(t, r.Assert(), test.ShouldBeNil)
	test.That(t, len(cli.lastRegs), test.ShouldEqual, status.SlotsPerDevice)

	test.That(t, r.Observe(errors.New("spi: timeout"), 0), test.ShouldBeNil)
	for i := 0; i < 5; i++ {
		test.That(t, r.Tick(), test.ShouldBeNil)
	}
	test.That(t, r.Observe(nil, 1), test.ShouldBeNil)

	// a tick after recovery writes nothing
	n := len(cli.writes)
	test.That(t, r.Tick(), test.ShouldBeNil)
	test.That(t, len(cli.writes), test.ShouldEqual, n)

	base := statusPlan().Status[0].BaseSlot * status.SlotsPerDevice
	health := uint16(0xFFFF)
	for _, w := range cli.writes {
		if w.addr == base+status.SlotHealthCode && len(w.regs) == 1 {
			health = w.regs[0]
		}
	}
	test.That(t, health, test.ShouldEqual, r.Snapshot().Health)
}

func TestHealthReporter_DisabledStatus(t *testing.T) {
	r := NewHealthReporter(nil, nil)
	test.That(t, r.Assert(), test.ShouldBeNil)
	test.That(t, r.Observe(errors.New("boom"), 3), test.ShouldBeNil)
	test.That(t, r.Tick(), test.ShouldBeNil)

	s := r.Snapshot()
	test.That(t, s.Health, test.ShouldEqual, status.HealthError)
	test.That(t, s.SecondsInError, test.ShouldEqual, uint16(1))
	test.That(t, s.InitStatus, test.ShouldEqual, uint16(3))
}
