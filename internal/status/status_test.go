// internal/status/status_test.go
package status

import (
	"errors"
	"sync"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"go.viam.com/test"
)

type codedErr struct{ code uint16 }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() uint16  { return e.code }

func TestCode(t *testing.T) {
	test.That(t, Code(nil), test.ShouldEqual, uint16(0))
	test.That(t, Code(errors.New("plain")), test.ShouldEqual, uint16(1))
	test.That(t, Code(codedErr{0x0203}), test.ShouldEqual, uint16(0x0203))
	test.That(t, Code(pkgerrors.Wrap(codedErr{7}, "poll")), test.ShouldEqual, uint16(7))
}

func TestEncode(t *testing.T) {
	regs := Encode(Snapshot{Health: HealthError, LastErrorCode: 9, SecondsInError: 3, InitStatus: 2})
	test.That(t, len(regs), test.ShouldEqual, SlotsPerDevice)
	test.That(t, regs[:4], test.ShouldResemble, []uint16{HealthError, 9, 3, 2})
	for _, r := range regs[SlotReservedStart:] {
		test.That(t, r, test.ShouldEqual, uint16(0))
	}
}

func TestEncodeDeviceName(t *testing.T) {
	regs := EncodeDeviceName("IMU-A\x01")
	test.That(t, len(regs), test.ShouldEqual, SlotDeviceNameSlots)
	test.That(t, regs[0], test.ShouldEqual, uint16('I')<<8|uint16('M'))
	test.That(t, regs[1], test.ShouldEqual, uint16('U')<<8|uint16('-'))
	test.That(t, regs[2], test.ShouldEqual, uint16('A')<<8|uint16('?'))
	test.That(t, regs[3], test.ShouldEqual, uint16(0))

	long := EncodeDeviceName("0123456789ABCDEFXYZ")
	test.That(t, long[7], test.ShouldEqual, uint16('E')<<8|uint16('F'))
}

func TestIndicatorTransitions(t *testing.T) {
	in := NewIndicator()
	test.That(t, in.Snapshot().Health, test.ShouldEqual, HealthUnknown)

	// unknown counts as not OK
	s, changed := in.Tick()
	test.That(t, changed, test.ShouldBeTrue)
	test.That(t, s.SecondsInError, test.ShouldEqual, uint16(1))

	s, changed = in.Observe(codedErr{0x0103}, 3)
	test.That(t, changed, test.ShouldBeTrue)
	test.That(t, s, test.ShouldResemble, Snapshot{Health: HealthError, LastErrorCode: 0x0103, SecondsInError: 1, InitStatus: 3})

	_, changed = in.Observe(codedErr{0x0103}, 3)
	test.That(t, changed, test.ShouldBeFalse)

	s, _ = in.Tick()
	test.That(t, s.SecondsInError, test.ShouldEqual, uint16(2))

	s, changed = in.Observe(nil, 1)
	test.That(t, changed, test.ShouldBeTrue)
	test.That(t, s, test.ShouldResemble, Snapshot{Health: HealthOK, InitStatus: 1})

	_, changed = in.Tick()
	test.That(t, changed, test.ShouldBeFalse)
}

func TestIndicatorSaturates(t *testing.T) {
	in := NewIndicator()
	in.Observe(errors.New("x"), 0)
	for i := 0; i < MaxSecondsInError+10; i++ {
		in.Tick()
	}
	test.That(t, in.Snapshot().SecondsInError, test.ShouldEqual, uint16(MaxSecondsInError))
}

func TestIndicatorConcurrent(t *testing.T) {
	in := NewIndicator()
	in.Observe(errors.New("x"), 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				in.Tick()
			}
		}()
	}
	wg.Wait()
	test.That(t, in.Snapshot().SecondsInError, test.ShouldEqual, uint16(800))
}
