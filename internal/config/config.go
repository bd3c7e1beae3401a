// internal/config/config.go
package config

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Replicator ReplicatorConfig `yaml:"replicator"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // debug | info | warn | error
	Encoding string `yaml:"encoding"` // console | json
}

type ReplicatorConfig struct {
	Units []UnitConfig `yaml:"units"`
}

// ---- UNIT ----

type UnitConfig struct {
	ID        string          `yaml:"id"`
	Source    SourceConfig    `yaml:"source"`
	Sensor    SensorConfig    `yaml:"sensor"`
	Poll      PollConfig      `yaml:"poll"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Targets   []TargetConfig  `yaml:"targets"`
}

// ---- SOURCE ----

type SourceConfig struct {
	Port    string `yaml:"port"`     // periph SPI registry name, e.g. "SPI0.0"
	SpeedHz int64  `yaml:"speed_hz"` // bus clock
	Mode    int    `yaml:"mode"`     // SPI mode 0..3

	// Device status block (optional, opt-in)
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`
}

// ---- SENSOR ----

type SensorConfig struct {
	Init         InitConfig  `yaml:"init"`
	Accel        AccelConfig `yaml:"accel"`
	Gyro         GyroConfig  `yaml:"gyro"`
	WriteDelayMs int         `yaml:"write_delay_ms"`
}

type InitConfig struct {
	MaxAttempts   int  `yaml:"max_attempts"`
	StatusPollCap int  `yaml:"status_poll_cap"`
	SettleMs      int  `yaml:"settle_ms"`
	SoftReset     bool `yaml:"soft_reset"`
}

type AccelConfig struct {
	ODRHz       float64 `yaml:"odr_hz"`
	RangeG      int     `yaml:"range_g"`
	Bwp         string  `yaml:"bwp"`
	Performance *bool   `yaml:"performance"`
}

type GyroConfig struct {
	ODRHz            float64 `yaml:"odr_hz"`
	RangeDps         int     `yaml:"range_dps"`
	Bwp              string  `yaml:"bwp"`
	Performance      *bool   `yaml:"performance"`
	NoisePerformance bool    `yaml:"noise_performance"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- ESTIMATOR ----

type EstimatorConfig struct {
	Enabled bool    `yaml:"enabled"`
	Beta    float64 `yaml:"beta"`
}

// ---- TARGET ----

type TargetConfig struct {
	ID           uint32       `yaml:"id"`
	Endpoint     string       `yaml:"endpoint"`       // host:port, or serial device for modbus-rtu
	Protocol     string       `yaml:"protocol"`       // modbus | modbus-rtu | ingest
	UnitID       uint8        `yaml:"unit_id"`        // sample block memory
	StatusUnitID *uint8       `yaml:"status_unit_id"` // per-target status memory (optional)
	Address      uint16       `yaml:"address"`        // first register of the sample block
	TimeoutMs    int          `yaml:"timeout_ms"`
	Serial       SerialConfig `yaml:"serial"` // modbus-rtu only
}

type SerialConfig struct {
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"` // N | E | O
	StopBits int    `yaml:"stop_bits"`
}

// ---- PROTOCOLS ----

const (
	ProtocolModbus    = "modbus"
	ProtocolModbusRTU = "modbus-rtu"
	ProtocolIngest    = "ingest"
)

// SampleBlockSize is the number of registers one unit writes per target.
const SampleBlockSize = 12
