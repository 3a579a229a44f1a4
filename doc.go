// Package mariner is a client for the serial G-code protocol spoken by
// Chitu-based MSLA resin printers, such as the Elegoo Mars family.
//
// The printer's mainboard exposes a UART that answers one reply line per
// command. This package frames the commands, classifies the replies and
// turns them into Go values, covering print control (select, start, pause,
// resume, stop), status queries (firmware version, machine state, print
// progress, Z position) and Z axis motion.
//
// # Basic Usage
//
// Create a client with the default configuration (/dev/serial0, 115200 baud,
// 100ms reply timeout) and open it:
//
//	printer, err := mariner.NewPrinter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := printer.Open(); err != nil {
//	    log.Fatal(err)
//	}
//	defer printer.Close()
//
//	version, err := printer.FirmwareVersion()
//	status, err := printer.PrintStatus()
//
// # Configuration Options
//
// Use functional options for custom configuration:
//
//	printer, err := mariner.NewPrinter(
//	    mariner.WithDevice("/dev/ttyUSB0"),
//	    mariner.WithBaudRate(115200),
//	    mariner.WithReadTimeout(200*time.Millisecond),
//	)
//
// # Print Control
//
// Printing runs from the file storage attached to the printer. Select a
// file, start it, and poll the progress:
//
//	err := printer.SelectFile("lattice.ctb")
//	err = printer.StartPrinting("lattice.ctb")
//
//	status, err := printer.PrintStatus()
//	if frac, ok := status.Progress(); ok {
//	    fmt.Printf("%s %.1f%%\n", status.State, 100*frac)
//	}
//
// # Motion
//
// The Z axis moves by relative offsets in millimeters, negative values
// toward the build plate:
//
//	err := printer.MoveBy(10)                  // raise 10mm at 600mm/min
//	err = printer.MoveByAtRate(-0.5, 30)       // lower 0.5mm, slowly
//	err = printer.MoveToHome()
//
// # Error Handling
//
// Failures are classified so callers can distinguish a dead link from a
// confused firmware:
//
//	var (
//	    ErrNotConnected        // operation before Open or after Close
//	    ErrAlreadyOpen         // second Open on a live session
//	    ErrNoResponse          // reply deadline expired with no bytes
//	    ErrTruncatedResponse   // reply bytes without a line terminator
//	    ErrUndecodableResponse // reply is not valid UTF-8
//	)
//
// Use errors.Is() for the sentinels and errors.As() for the rich types:
//
//	if errors.Is(err, mariner.ErrNoResponse) {
//	    // printer off, cable loose, or wrong device
//	}
//
//	var unexpected *mariner.UnexpectedResponseError
//	if errors.As(err, &unexpected) {
//	    log.Printf("printer said %q to %s", unexpected.Response, unexpected.Cmd)
//	}
//
// A TransportError wraps faults from the serial layer itself, with the
// command and the I/O direction attached.
//
// # Concurrency
//
// The protocol has no framing beyond strict request/reply ordering, so a
// Printer is not safe for concurrent use. Callers that share one session
// across goroutines must serialize access themselves.
//
// # Default Configuration
//
//   - Device: /dev/serial0
//   - BaudRate: 115200
//   - ReadTimeout: 100ms
//   - Terminator: none
package mariner
