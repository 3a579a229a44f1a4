package mariner

import (
	"errors"
	"time"
)

// DefaultFeedRate is the Z-axis feed rate for moves that do not specify one,
// in millimeters per minute.
const DefaultFeedRate = 600

var ErrInvalidConfig = errors.New("invalid printer configuration")

// Opener produces the transport for a session. The default opener dials the
// configured serial device; tests and alternate links substitute their own.
type Opener func(Config) (Transport, error)

// Config holds the configuration for a printer session
type Config struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration

	// Terminator is appended to every outgoing command. The Chitu firmware
	// accepts bare commands, so it defaults to empty; boards that want an
	// explicit newline get it via WithTerminator.
	Terminator string

	Opener Opener
}

// Option is a functional option for configuring a printer session
type Option func(*Config) error

// DefaultConfig returns a configuration with the stock Elegoo Mars wiring:
// the Raspberry Pi UART at 115200 baud and a 100ms reply timeout.
func DefaultConfig() Config {
	return Config{
		Device:      "/dev/serial0",
		BaudRate:    115200,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// WithDevice sets the serial device path
func WithDevice(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return ErrInvalidConfig
		}
		c.Device = path
		return nil
	}
}

// WithBaudRate sets the baud rate; the transport rejects rates the hardware
// cannot do when the session opens.
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if rate <= 0 {
			return ErrInvalidConfig
		}
		c.BaudRate = rate
		return nil
	}
}

// WithReadTimeout sets how long one exchange waits for the reply line
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return ErrInvalidConfig
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithTerminator sets the command line terminator, one of "", "\n" or
// "\r\n". This is a protocol constant for a given board, not a tunable;
// validate any change against real hardware.
func WithTerminator(terminator string) Option {
	return func(c *Config) error {
		switch terminator {
		case "", "\n", "\r\n":
			c.Terminator = terminator
			return nil
		default:
			return ErrInvalidConfig
		}
	}
}

// WithOpener substitutes the transport factory used by Open
func WithOpener(opener Opener) Option {
	return func(c *Config) error {
		if opener == nil {
			return ErrInvalidConfig
		}
		c.Opener = opener
		return nil
	}
}
