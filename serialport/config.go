package serialport

import "time"

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// Config holds the configuration for a serial port. Printer boards speak
// 8N1, which is the default; the frame settings are still tunable for
// bench setups that differ.
type Config struct {
	BaudRate    int
	DataBits    int
	StopBits    int
	Parity      Parity
	ReadTimeout time.Duration // granularity 100ms (VTIME), 0 means non-blocking reads
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		DataBits:    8,
		StopBits:    1,
		Parity:      ParityNone,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithDataBits sets the number of data bits (5, 6, 7, or 8)
func WithDataBits(bits int) Option {
	return func(c *Config) error {
		if bits < 5 || bits > 8 {
			return ErrInvalidConfig
		}
		c.DataBits = bits
		return nil
	}
}

// WithStopBits sets the number of stop bits (1 or 2)
func WithStopBits(bits int) Option {
	return func(c *Config) error {
		if bits != 1 && bits != 2 {
			return ErrInvalidConfig
		}
		c.StopBits = bits
		return nil
	}
}

// WithParity sets the parity mode
func WithParity(parity Parity) Option {
	return func(c *Config) error {
		if parity < ParityNone || parity > ParityEven {
			return ErrInvalidConfig
		}
		c.Parity = parity
		return nil
	}
}

// WithReadTimeout sets the read timeout. The kernel keeps this in tenths of
// a second, so the timeout must be a multiple of 100ms, at most 25.5s.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if _, err := vtime(timeout); err != nil {
			return err
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// vtime converts a read timeout to the termios VTIME unit of deciseconds.
func vtime(timeout time.Duration) (uint8, error) {
	if timeout < 0 || timeout > 25500*time.Millisecond {
		return 0, ErrInvalidConfig
	}
	if timeout%(100*time.Millisecond) != 0 {
		return 0, ErrInvalidConfig
	}
	return uint8(timeout / (100 * time.Millisecond)), nil
}
