// internal/bus/spi/client.go
package spi

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/tamzrod/bmi270-replicator/internal/bus"
)

// Config selects and clocks one SPI port.
type Config struct {
	Port      string // periph registry name, e.g. "SPI0.0"
	Frequency physic.Frequency
	Mode      spi.Mode
}

// Client adapts a periph.io SPI connection to bus.Transport.
// Every call is one chip-select assertion.
type Client struct {
	conn spi.Conn
	port spi.PortCloser
}

var _ bus.Transport = (*Client)(nil)

// Open opens the named port and connects at 8 bits per word.
// host.Init must have run before.
func Open(cfg Config) (*Client, error) {
	if cfg.Port == "" {
		return nil, errors.New("spi: port required")
	}
	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, errors.Wrapf(err, "spi: open %s", cfg.Port)
	}
	conn, err := port.Connect(cfg.Frequency, cfg.Mode, 8)
	if err != nil {
		return nil, multierr.Combine(
			errors.Wrapf(err, "spi: connect %s", cfg.Port),
			port.Close(),
		)
	}
	return &Client{conn: conn, port: port}, nil
}

// New wraps an already connected conn. Close becomes a no-op.
func New(conn spi.Conn) *Client {
	return &Client{conn: conn}
}

// Write sends p with no read phase.
func (c *Client) Write(p []byte) error {
	return c.conn.Tx(p, nil)
}

// Read clocks len(p) bytes in.
func (c *Client) Read(p []byte) error {
	return c.conn.TxPackets([]spi.Packet{{R: p}})
}

// Transact runs ops back to back with chip select held between them.
func (c *Client) Transact(ops []bus.Op) error {
	if len(ops) == 0 {
		return nil
	}
	pkts := make([]spi.Packet, len(ops))
	for i, op := range ops {
		switch op.Kind {
		case bus.OpWrite:
			pkts[i].W = op.Buf
		case bus.OpRead:
			pkts[i].R = op.Buf
		}
		pkts[i].KeepCS = i < len(ops)-1
	}
	return c.conn.TxPackets(pkts)
}

// Close releases the port if this client opened it.
func (c *Client) Close() error {
	if c.port == nil {
		return nil
	}
	var err error
	if h := c.conn.Halt(); h != nil {
		err = multierr.Append(err, errors.Wrap(h, "spi: halt"))
	}
	err = multierr.Append(err, c.port.Close())
	c.port = nil
	return err
}

// String names the underlying connection.
func (c *Client) String() string {
	return c.conn.String()
}
