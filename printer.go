package mariner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/basic-settings/mariner/serialport"
)

// Transport is the byte link a Printer talks through. The production
// implementation is serialport.Port; anything that can carry one command
// line out and one reply line back will do.
type Transport interface {
	io.Writer

	// ReadLine returns the bytes received up to and including the next
	// newline, or whatever arrived before the read timeout expired.
	ReadLine() ([]byte, error)

	// FlushInput discards bytes already received but not yet read.
	FlushInput() error

	Close() error
}

// Printer is a client for the G-code protocol spoken by Chitu-based resin
// printers such as the Elegoo Mars. Each operation performs one
// command/reply exchange on the underlying transport.
//
// A Printer is not safe for concurrent use: the protocol has no framing
// beyond strict request/reply ordering, so callers that share one Printer
// across goroutines must serialize access themselves.
type Printer struct {
	cfg  Config
	port Transport
}

// NewPrinter creates a printer client with the given options. The client
// starts disconnected; call Open before issuing commands.
func NewPrinter(opts ...Option) (*Printer, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Printer{cfg: cfg}, nil
}

func openSerial(cfg Config) (Transport, error) {
	return serialport.Open(cfg.Device,
		serialport.WithBaudRate(cfg.BaudRate),
		serialport.WithReadTimeout(cfg.ReadTimeout),
	)
}

// Open establishes the connection to the printer
func (p *Printer) Open() error {
	if p.port != nil {
		return ErrAlreadyOpen
	}
	open := p.cfg.Opener
	if open == nil {
		open = openSerial
	}
	port, err := open(p.cfg)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.cfg.Device, err)
	}
	p.port = port
	return nil
}

// Close releases the connection. The printer can be reopened afterwards.
func (p *Printer) Close() error {
	if p.port == nil {
		return ErrNotConnected
	}
	err := p.port.Close()
	p.port = nil
	if err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}

// Connected reports whether the printer connection is open
func (p *Printer) Connected() bool {
	return p.port != nil
}

// send writes one command frame without waiting for a reply. Stale input is
// flushed first so a leftover line from a previous exchange cannot be
// mistaken for the next reply.
func (p *Printer) send(cmd Command) error {
	if p.port == nil {
		return ErrNotConnected
	}
	if err := p.port.FlushInput(); err != nil {
		return &TransportError{Op: "flush", Cmd: cmd.String(), Err: err}
	}
	frame := cmd.bytes(p.cfg.Terminator)
	n, err := p.port.Write(frame)
	if err != nil {
		return &TransportError{Op: "write", Cmd: cmd.String(), Err: err}
	}
	if n < len(frame) {
		return &TransportError{Op: "write", Cmd: cmd.String(), Err: io.ErrShortWrite}
	}
	return nil
}

// Exchange performs one full command/reply cycle and returns the raw reply
// text. Most callers want the typed operations below; Exchange exists for
// interactive use, where the operator picks the command.
//
// A reply must be non-empty, newline-terminated and valid UTF-8; anything
// else reports ErrNoResponse, ErrTruncatedResponse or ErrUndecodableResponse
// with the command attached.
func (p *Printer) Exchange(cmd Command) (string, error) {
	if err := p.send(cmd); err != nil {
		return "", err
	}
	raw, err := p.port.ReadLine()
	if err != nil {
		return "", &TransportError{Op: "read", Cmd: cmd.String(), Err: err}
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("%s: %w", cmd, ErrNoResponse)
	}
	if !bytes.HasSuffix(raw, []byte("\n")) {
		return "", fmt.Errorf("%s: %w", cmd, ErrTruncatedResponse)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s: %w", cmd, ErrUndecodableResponse)
	}
	return string(raw), nil
}

// expectOK runs an exchange and requires a leading "ok" acknowledgment.
func (p *Printer) expectOK(cmd Command) error {
	raw, err := p.Exchange(cmd)
	if err != nil {
		return err
	}
	if !okAcknowledged(raw) {
		return unexpectedResponse(cmd, raw, `an "ok" acknowledgment`)
	}
	return nil
}

// FirmwareVersion queries the firmware version string, e.g. "V4.3.4_LCDC".
func (p *Printer) FirmwareVersion() (string, error) {
	raw, err := p.Exchange(cmdFirmwareVersion)
	if err != nil {
		return "", err
	}
	version, ok := parseFirmwareVersion(raw)
	if !ok {
		return "", unexpectedResponse(cmdFirmwareVersion, raw, `"ok <version>"`)
	}
	return version, nil
}

// State queries the raw machine state report. The reply is returned
// verbatim; StatusFields and ParseStateReport pick it apart.
func (p *Printer) State() (string, error) {
	raw, err := p.Exchange(cmdState)
	if err != nil {
		return "", err
	}
	if !okAcknowledged(raw) {
		return "", unexpectedResponse(cmdState, raw, `an "ok" state report`)
	}
	return raw, nil
}

// StateReport queries the machine state and decodes the fields of interest.
func (p *Printer) StateReport() (StateReport, error) {
	raw, err := p.State()
	if err != nil {
		return StateReport{}, err
	}
	return ParseStateReport(raw)
}

// PrintStatus queries the SD print progress and classifies the printer as
// idle, starting a print or printing.
func (p *Printer) PrintStatus() (PrintStatus, error) {
	raw, err := p.Exchange(cmdPrintStatus)
	if err != nil {
		return PrintStatus{}, err
	}
	status, ok := classifyPrintStatus(raw)
	if !ok {
		return PrintStatus{}, unexpectedResponse(cmdPrintStatus, raw, "an SD print byte report or a not-printing notice")
	}
	return status, nil
}

// ZPosition queries the current Z axis position in millimeters
func (p *Printer) ZPosition() (float64, error) {
	raw, err := p.Exchange(cmdZPosition)
	if err != nil {
		return 0, err
	}
	z, ok := parseZPosition(raw)
	if !ok {
		return 0, unexpectedResponse(cmdZPosition, raw, "a position report with a Z coordinate")
	}
	return z, nil
}

// SelectedFile queries the filename of the currently selected print file
func (p *Printer) SelectedFile() (string, error) {
	raw, err := p.Exchange(cmdSelectedFile)
	if err != nil {
		return "", err
	}
	filename, ok := parseSelectedFile(raw)
	if !ok {
		return "", unexpectedResponse(cmdSelectedFile, raw, `"ok '<filename>'"`)
	}
	return filename, nil
}

// SelectFile selects a file on the printer's storage for printing. The
// firmware acknowledges unknown filenames with an error text rather than a
// failure code, so the confirmation is matched against the filename.
func (p *Printer) SelectFile(filename string) error {
	cmd := selectFileCommand(filename)
	raw, err := p.Exchange(cmd)
	if err != nil {
		return err
	}
	if !strings.Contains(raw, "File opened:"+filename) {
		return unexpectedResponse(cmd, raw, fmt.Sprintf("open confirmation for %q", filename))
	}
	return nil
}

// StartPrinting starts printing the named file from the printer's storage
func (p *Printer) StartPrinting(filename string) error {
	return p.expectOK(startPrintCommand(filename))
}

// StopPrinting aborts the running print. The firmware answers with an error
// line when nothing is printing, which surfaces as an
// UnexpectedResponseError here.
func (p *Printer) StopPrinting() error {
	return p.expectOK(cmdStopPrinting)
}

// PausePrinting pauses the running print and lifts the plate
func (p *Printer) PausePrinting() error {
	return p.expectOK(cmdPausePrinting)
}

// ResumePrinting resumes a paused print
func (p *Printer) ResumePrinting() error {
	return p.expectOK(cmdResumePrinting)
}

// MoveBy moves the Z axis by the given offset in millimeters, negative
// values moving toward the build plate, at DefaultFeedRate.
func (p *Printer) MoveBy(deltaMM float64) error {
	return p.MoveByAtRate(deltaMM, DefaultFeedRate)
}

// MoveByAtRate moves the Z axis by the given offset at the given feed rate
// in millimeters per minute. The firmware resolves offsets to a tenth of a
// millimeter; finer values are rounded in the command.
func (p *Printer) MoveByAtRate(deltaMM float64, mmPerMin int) error {
	return p.expectOK(moveByCommand(deltaMM, mmPerMin))
}

// MoveToHome homes the Z axis
func (p *Printer) MoveToHome() error {
	return p.expectOK(cmdMoveToHome)
}

// StopMotors issues an emergency stop. The firmware does not reply, so the
// command is fire-and-forget.
func (p *Printer) StopMotors() error {
	return p.send(cmdStopMotors)
}

// Reboot restarts the printer's control board after the given delay. The
// board drops the connection instead of replying, so the command is
// fire-and-forget; callers should Close and reopen afterwards.
func (p *Printer) Reboot(delay time.Duration) error {
	return p.send(rebootCommand(delay))
}
