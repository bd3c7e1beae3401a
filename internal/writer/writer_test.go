// internal/writer/writer_test.go
package writer

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270"
	cfg "github.com/tamzrod/bmi270-replicator/internal/config"
	"github.com/tamzrod/bmi270-replicator/internal/poller"
)

// ---- fake endpoint client ----

type fakeEndpointClient struct {
	writes []writeCall
	fail   error

	lastRegsAddr uint16
	lastRegs     []uint16
}

type writeCall struct {
	unitID uint8
	addr   uint16
	regs   []uint16
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if f.fail != nil {
		return f.fail
	}
	cp := append([]uint16(nil), regs...)
	f.writes = append(f.writes, writeCall{unitID: unitID, addr: addr, regs: cp})
	f.lastRegsAddr = addr
	f.lastRegs = cp
	return nil
}

func goodResult() poller.PollResult {
	return poller.PollResult{
		UnitID: "unit-1",
		Sample: bmi270.Sample{
			Accel: bmi270.Axes{X: 1, Y: -1, Z: 0},
			Gyro:  bmi270.Axes{X: 2, Y: -2, Z: 0},
		},
		Time:        0xABCDEF,
		Orientation: quat.Number{Real: 1},
	}
}

// ---- tests ----

func TestEncodeSample(t *testing.T) {
	res := goodResult()
	res.Orientation = quat.Number{Real: 0.5, Imag: -0.5, Jmag: 2, Kmag: 0}

	regs := EncodeSample(res)
	test.That(t, len(regs), test.ShouldEqual, SampleBlockSize)
	test.That(t, SampleBlockSize, test.ShouldEqual, cfg.SampleBlockSize)
	test.That(t, regs, test.ShouldResemble, []uint16{
		1, 0xFFFF, 0,
		2, 0xFFFE, 0,
		0xCDEF, 0x00AB,
		0x2000, 0xE000, 0x7FFF, 0,
	})
}

func TestWriter_WritesBlockToEveryTarget(t *testing.T) {
	a := &fakeEndpointClient{}
	b := &fakeEndpointClient{}

	w := New(Plan{
		UnitID: "unit-1",
		Targets: []TargetEndpoint{
			{TargetID: 1, Endpoint: "ep1", UnitID: 1, Address: 100},
			{TargetID: 2, Endpoint: "ep2", UnitID: 9, Address: 0},
		},
	}, map[string]endpointClient{"ep1": a, "ep2": b})

	test.That(t, w.Write(goodResult()), test.ShouldBeNil)

	test.That(t, len(a.writes), test.ShouldEqual, 1)
	test.That(t, a.writes[0].unitID, test.ShouldEqual, uint8(1))
	test.That(t, a.writes[0].addr, test.ShouldEqual, uint16(100))
	test.That(t, len(a.writes[0].regs), test.ShouldEqual, SampleBlockSize)

	test.That(t, b.writes[0].unitID, test.ShouldEqual, uint8(9))
	test.That(t, b.writes[0].addr, test.ShouldEqual, uint16(0))
}

func TestWriter_FailedPollWritesNothing(t *testing.T) {
	fake := &fakeEndpointClient{}
	w := New(Plan{Targets: []TargetEndpoint{{Endpoint: "ep1"}}}, map[string]endpointClient{"ep1": fake})

	res := goodResult()
	res.Err = errors.New("poller: sample")
	test.That(t, w.Write(res), test.ShouldBeNil)
	test.That(t, len(fake.writes), test.ShouldEqual, 0)
}

func TestWriter_CollectsErrors(t *testing.T) {
	bad := &fakeEndpointClient{fail: errors.New("timeout")}
	good := &fakeEndpointClient{}

	w := New(Plan{
		Targets: []TargetEndpoint{
			{Endpoint: "missing"},
			{Endpoint: "bad", UnitID: 3, Address: 7},
			{Endpoint: "good"},
		},
	}, map[string]endpointClient{"bad": bad, "good": good})

	err := w.Write(goodResult())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing client for endpoint missing")
	test.That(t, err.Error(), test.ShouldContainSubstring, "ep=bad unit=3 addr=7")
	test.That(t, len(good.writes), test.ShouldEqual, 1)
}

func TestBuildPlan(t *testing.T) {
	slot := uint16(2)
	sid := uint8(5)
	u := cfg.UnitConfig{
		ID:     "imu0",
		Source: cfg.SourceConfig{StatusSlot: &slot, DeviceName: "FRONT"},
		Targets: []cfg.TargetConfig{
			{ID: 1, Endpoint: "ep1", UnitID: 1, Address: 12, StatusUnitID: &sid},
			{ID: 2, Endpoint: "ep2", UnitID: 1},
		},
	}

	plan, err := BuildPlan(u)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.Targets, test.ShouldResemble, []TargetEndpoint{
		{TargetID: 1, Endpoint: "ep1", UnitID: 1, Address: 12},
		{TargetID: 2, Endpoint: "ep2", UnitID: 1},
	})
	test.That(t, plan.Status, test.ShouldResemble, []StatusPlan{
		{Endpoint: "ep1", UnitID: 5, BaseSlot: 2, DeviceName: "FRONT"},
	})

	_, err = BuildPlan(cfg.UnitConfig{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildEndpointClients_ProtocolConflict(t *testing.T) {
	u := cfg.UnitConfig{
		ID: "imu0",
		Targets: []cfg.TargetConfig{
			{ID: 1, Endpoint: "ep1", Protocol: cfg.ProtocolIngest},
			{ID: 2, Endpoint: "ep1", Protocol: cfg.ProtocolModbus},
		},
	}
	_, _, err := BuildEndpointClients(u)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildEndpointClients_Ingest(t *testing.T) {
	u := cfg.UnitConfig{
		ID: "imu0",
		Targets: []cfg.TargetConfig{
			{ID: 1, Endpoint: "127.0.0.1:9", Protocol: cfg.ProtocolIngest},
			{ID: 2, Endpoint: "127.0.0.1:9", Protocol: cfg.ProtocolIngest},
		},
	}
	clients, closeAll, err := BuildEndpointClients(u)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(clients), test.ShouldEqual, 1)
	test.That(t, closeAll(), test.ShouldBeNil)
}
