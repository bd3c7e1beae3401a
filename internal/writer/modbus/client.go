// internal/writer/modbus/client.go
package modbus

import (
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/pkg/errors"
)

// EndpointClient is a single connection to one register memory endpoint.
// It serializes requests because it mutates SlaveId per memory write.
type EndpointClient struct {
	mu      sync.Mutex
	slaveID *byte
	conn    io.Closer
	client  modbus.Client
}

// Config is a Modbus TCP endpoint.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// RTUConfig is a Modbus RTU serial line.
type RTUConfig struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string // N | E | O
	StopBits int
	Timeout  time.Duration
}

// NewEndpointClient connects to a Modbus TCP endpoint.
func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, errors.Wrapf(err, "writer modbus: connect %s", cfg.Endpoint)
	}

	return &EndpointClient{
		slaveID: &h.SlaveId,
		conn:    h,
		client:  modbus.NewClient(h),
	}, nil
}

// NewRTUEndpointClient opens a Modbus RTU serial line.
func NewRTUEndpointClient(cfg RTUConfig) (*EndpointClient, error) {
	if cfg.Device == "" {
		return nil, errors.New("writer modbus: serial device required")
	}

	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = cfg.DataBits
	h.Parity = cfg.Parity
	h.StopBits = cfg.StopBits
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, errors.Wrapf(err, "writer modbus: open %s", cfg.Device)
	}

	return &EndpointClient{
		slaveID: &h.SlaveId,
		conn:    h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// WriteRegisters writes holding registers (FC 16).
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	*c.slaveID = unitID

	qty := uint16(len(regs))
	payload := packRegisters(regs)

	_, err := c.client.WriteMultipleRegisters(addr, qty, payload)
	return err
}

// packRegisters lays registers out big-endian, Modbus wire order.
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
