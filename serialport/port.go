// Package serialport opens and configures the UART a printer board hangs
// off, providing raw and line-oriented I/O on Linux via termios. Reads are
// bounded by the configured timeout instead of blocking forever, which is
// what a poll-the-printer protocol needs.
package serialport

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Port is an open serial device configured for raw I/O, 8N1 by default.
type Port struct {
	mu     sync.RWMutex
	fd     int
	config Config
	closed bool
}

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 921600:
		return unix.B921600, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// Open opens a serial device with the given path and options
func Open(device string, opts ...Option) (*Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, openError(device, err)
	}

	if err := configurePort(fd, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &Port{
		fd:     fd,
		config: config,
	}, nil
}

// openError maps the open(2) errno onto the package sentinels
func openError(device string, err error) error {
	switch err {
	case unix.ENOENT:
		return ErrDeviceNotFound
	case unix.EACCES:
		return ErrPermissionDenied
	case unix.EBUSY:
		return ErrDeviceInUse
	default:
		return fmt.Errorf("failed to open %s: %v", device, err)
	}
}

// configurePort puts the device into raw mode with VMIN/VTIME timeouts
func configurePort(fd int, config Config) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("failed to get termios: %v", err)
	}

	// Raw mode, modem lines ignored, frame settings applied below
	termios.Cflag = unix.CS8 | unix.CREAD | unix.CLOCAL
	termios.Iflag = 0
	termios.Oflag = 0
	termios.Lflag = 0

	// Data bits
	if config.DataBits != 8 {
		termios.Cflag &^= unix.CSIZE
		switch config.DataBits {
		case 5:
			termios.Cflag |= unix.CS5
		case 6:
			termios.Cflag |= unix.CS6
		case 7:
			termios.Cflag |= unix.CS7
		}
	}

	// Stop bits
	if config.StopBits == 2 {
		termios.Cflag |= unix.CSTOPB
	}

	// Parity
	switch config.Parity {
	case ParityOdd:
		termios.Cflag |= unix.PARENB | unix.PARODD
	case ParityEven:
		termios.Cflag |= unix.PARENB
	}

	// VMIN=0 with VTIME makes each read wait at most the configured timeout
	deciseconds, err := vtime(config.ReadTimeout)
	if err != nil {
		return err
	}
	termios.Cc[unix.VMIN] = 0
	termios.Cc[unix.VTIME] = deciseconds

	baudRate, err := getBaudRate(config.BaudRate)
	if err != nil {
		return err
	}
	termios.Cflag = (termios.Cflag &^ unix.CBAUD) | baudRate
	termios.Ispeed = baudRate
	termios.Ospeed = baudRate

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return fmt.Errorf("failed to set termios: %v", err)
	}

	return nil
}

// Close closes the serial port
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	err := unix.Close(p.fd)
	p.closed = true
	return err
}

// Read reads data from the serial port. With no data, it returns 0 bytes
// after the configured read timeout.
func (p *Port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Read(p.fd, buf)
}

// Write writes data to the serial port
func (p *Port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Write(p.fd, data)
}

// ReadLine reads bytes until a newline arrives or the device falls silent
// for the read timeout. The returned slice keeps the newline when one was
// received; an empty slice means the device sent nothing at all.
func (p *Port) ReadLine() ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPortClosed
	}

	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := unix.Read(p.fd, buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Timeout expired: the line is whatever arrived so far.
			return line, nil
		}
		line = append(line, buf[0])
		if buf[0] == '\n' {
			return line, nil
		}
	}
}

// FlushInput discards any unread input data
func (p *Port) FlushInput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// FlushOutput discards any unwritten output data
func (p *Port) FlushOutput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCOFLUSH)
}

// Drain waits until all output written to the port has been transmitted
func (p *Port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}
