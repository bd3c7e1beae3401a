// internal/bus/bustest/bustest.go

// Package bustest provides a scripted in-memory bus for tests.
//
// The fake speaks the sensor's SPI register protocol: a read is a
// transaction of [addr|0x80] followed by a read phase whose first byte is
// a latency filler, and a write is [addr, value...].
package bustest

import (
	"sync"
	"time"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
	"github.com/tamzrod/bmi270-replicator/internal/bus"
)

// Filler is the byte the fake returns in the latency slot of every read.
const Filler byte = 0xFF

const readFlag = 0x80

// Kind classifies one entry of the transaction log.
type Kind uint8

const (
	KindWrite Kind = iota
	KindRead
	KindSleep
)

// Record is one observed bus transaction or delay.
type Record struct {
	Kind  Kind
	Addr  byte          // register address, read flag stripped
	Data  []byte        // written payload, or returned payload without filler
	Sleep time.Duration // KindSleep only
}

// Bus is a fake bus.Transport backed by a register file.
// The zero value is not usable; call New.
type Bus struct {
	mu      sync.Mutex
	regs    [128]byte
	scripts map[byte][][]byte
	log     []Record

	// Fail, when set, is consulted before every transaction.
	// A non-nil return aborts the transaction with that error.
	Fail func(r Record) error
}

var _ bus.Transport = (*Bus)(nil)

// New returns a fake bus whose configuration registers hold their
// power-on reset values. Everything else reads as zero.
func New() *Bus {
	b := &Bus{scripts: make(map[byte][][]byte)}
	for _, r := range []regs.Encoder{
		&regs.DefaultAccConf,
		&regs.DefaultAccRange,
		&regs.DefaultGyrConf,
		&regs.DefaultGyrRange,
		&regs.DefaultPwrConf,
	} {
		b.regs[r.Address()&0x7F] = r.Encode()
	}
	return b
}

// Set stores a register value that reads will return until overwritten.
func (b *Bus) Set(addr byte, v byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs[addr&0x7F] = v
}

// Reg returns the current register value.
func (b *Bus) Reg(addr byte) byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regs[addr&0x7F]
}

// Script queues payloads returned by successive reads starting at addr.
// The last payload sticks once the queue drains.
func (b *Bus) Script(addr byte, payloads ...[]byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scripts[addr&0x7F] = append(b.scripts[addr&0x7F], payloads...)
}

// Log returns a copy of everything observed so far.
func (b *Bus) Log() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.log))
	copy(out, b.log)
	return out
}

// Reset clears the transaction log.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = nil
}

// Write implements bus.Transport.
func (b *Bus) Write(p []byte) error {
	return b.Transact([]bus.Op{bus.Write(p)})
}

// Read implements bus.Transport. A bare read has no address phase,
// so it returns filler bytes only.
func (b *Bus) Read(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec := Record{Kind: KindRead}
	if err := b.check(rec); err != nil {
		return err
	}
	for i := range p {
		p[i] = Filler
	}
	rec.Data = append([]byte(nil), p...)
	b.log = append(b.log, rec)
	return nil
}

// Transact implements bus.Transport.
func (b *Bus) Transact(ops []bus.Op) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(ops) == 2 && ops[0].Kind == bus.OpWrite && ops[1].Kind == bus.OpRead &&
		len(ops[0].Buf) == 1 && ops[0].Buf[0]&readFlag != 0 {
		return b.readRegs(ops[0].Buf[0]&0x7F, ops[1].Buf)
	}

	// every other shape must be write-only: [addr, payload...] across phases
	var stream []byte
	for _, op := range ops {
		if op.Kind != bus.OpWrite {
			panic("bustest: unsupported transaction shape")
		}
		stream = append(stream, op.Buf...)
	}
	if len(stream) == 0 {
		panic("bustest: empty write")
	}

	rec := Record{Kind: KindWrite, Addr: stream[0] & 0x7F, Data: append([]byte(nil), stream[1:]...)}
	if err := b.check(rec); err != nil {
		return err
	}
	// single-value writes land in the register file; bursts stream into one port
	if len(rec.Data) == 1 {
		b.regs[rec.Addr] = rec.Data[0]
	}
	b.log = append(b.log, rec)
	return nil
}

func (b *Bus) readRegs(addr byte, buf []byte) error {
	rec := Record{Kind: KindRead, Addr: addr}
	if err := b.check(rec); err != nil {
		return err
	}
	if len(buf) == 0 {
		b.log = append(b.log, rec)
		return nil
	}

	buf[0] = Filler
	payload := buf[1:]
	for i := range payload {
		payload[i] = b.regs[(int(addr)+i)&0x7F]
	}
	if q := b.scripts[addr]; len(q) > 0 {
		copy(payload, q[0])
		if len(q) > 1 {
			b.scripts[addr] = q[1:]
		}
	}

	rec.Data = append([]byte(nil), payload...)
	b.log = append(b.log, rec)
	return nil
}

func (b *Bus) check(rec Record) error {
	if b.Fail == nil {
		return nil
	}
	return b.Fail(rec)
}

// Delay returns a bus.Delay that records sleeps into the same log
// without blocking.
func (b *Bus) Delay() bus.Delay {
	return delay{b}
}

type delay struct{ b *Bus }

func (d delay) Sleep(dur time.Duration) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.log = append(d.b.log, Record{Kind: KindSleep, Sleep: dur})
}
