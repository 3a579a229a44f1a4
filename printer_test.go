package mariner

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"
)

// fakeTransport scripts the printer side of a session: each ReadLine
// consumes the next queued reply. Frames written and flushes performed are
// recorded for assertion.
type fakeTransport struct {
	replies [][]byte
	writes  []string
	flushes int
	closed  bool

	flushErr error
	writeErr error
	readErr  error
	short    bool
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.writes = append(f.writes, string(p))
	if f.short {
		return len(p) / 2, nil
	}
	return len(p), nil
}

func (f *fakeTransport) ReadLine() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.replies) == 0 {
		return nil, nil
	}
	next := f.replies[0]
	f.replies = f.replies[1:]
	return next, nil
}

func (f *fakeTransport) FlushInput() error {
	f.flushes++
	return f.flushErr
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func (f *fakeTransport) queue(replies ...string) {
	for _, r := range replies {
		f.replies = append(f.replies, []byte(r))
	}
}

func openTestPrinter(t *testing.T, f *fakeTransport, opts ...Option) *Printer {
	t.Helper()
	opts = append([]Option{WithOpener(func(Config) (Transport, error) { return f, nil })}, opts...)
	printer, err := NewPrinter(opts...)
	if err != nil {
		t.Fatalf("NewPrinter failed: %v", err)
	}
	if err := printer.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return printer
}

func checkWrites(t *testing.T, f *fakeTransport, want ...string) {
	t.Helper()
	if len(f.writes) != len(want) {
		t.Fatalf("Wrote %d frames %q, want %d", len(f.writes), f.writes, len(want))
	}
	for i := range want {
		if f.writes[i] != want[i] {
			t.Errorf("Frame %d = %q, want %q", i, f.writes[i], want[i])
		}
	}
}

func TestOpenClose(t *testing.T) {
	transport := &fakeTransport{}
	printer := openTestPrinter(t, transport)

	if !printer.Connected() {
		t.Error("Expected Connected after Open")
	}
	if err := printer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if printer.Connected() {
		t.Error("Expected not Connected after Close")
	}
	if !transport.closed {
		t.Error("Expected transport to be closed")
	}
}

func TestOpenTwice(t *testing.T) {
	printer := openTestPrinter(t, &fakeTransport{})

	err := printer.Open()
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("Expected ErrAlreadyOpen, got %v", err)
	}
}

func TestReopenAfterClose(t *testing.T) {
	transport := &fakeTransport{}
	printer := openTestPrinter(t, transport)

	if err := printer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := printer.Open(); err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	transport.queue("ok V4.3.4_LCDC\n")
	if _, err := printer.FirmwareVersion(); err != nil {
		t.Errorf("FirmwareVersion after reopen failed: %v", err)
	}
}

func TestCloseWithoutOpen(t *testing.T) {
	printer, err := NewPrinter()
	if err != nil {
		t.Fatalf("NewPrinter failed: %v", err)
	}
	if err := printer.Close(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
}

func TestOperationsRequireOpen(t *testing.T) {
	printer, err := NewPrinter()
	if err != nil {
		t.Fatalf("NewPrinter failed: %v", err)
	}

	tests := []struct {
		name string
		op   func() error
	}{
		{"FirmwareVersion", func() error { _, err := printer.FirmwareVersion(); return err }},
		{"State", func() error { _, err := printer.State(); return err }},
		{"PrintStatus", func() error { _, err := printer.PrintStatus(); return err }},
		{"ZPosition", func() error { _, err := printer.ZPosition(); return err }},
		{"SelectedFile", func() error { _, err := printer.SelectedFile(); return err }},
		{"SelectFile", func() error { return printer.SelectFile("a.ctb") }},
		{"StartPrinting", func() error { return printer.StartPrinting("a.ctb") }},
		{"StopPrinting", printer.StopPrinting},
		{"PausePrinting", printer.PausePrinting},
		{"ResumePrinting", printer.ResumePrinting},
		{"MoveBy", func() error { return printer.MoveBy(10) }},
		{"MoveToHome", printer.MoveToHome},
		{"StopMotors", printer.StopMotors},
		{"Reboot", func() error { return printer.Reboot(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, ErrNotConnected) {
				t.Errorf("Expected ErrNotConnected, got %v", err)
			}
		})
	}
}

func TestFirmwareVersion(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok V4.3.4_LCDC\n", "ok V4.3.4_LCDC\n")
	printer := openTestPrinter(t, transport)

	version, err := printer.FirmwareVersion()
	if err != nil {
		t.Fatalf("FirmwareVersion failed: %v", err)
	}
	if version != "V4.3.4_LCDC" {
		t.Errorf("Expected V4.3.4_LCDC, got %q", version)
	}

	// The query is read-only and repeatable.
	again, err := printer.FirmwareVersion()
	if err != nil {
		t.Fatalf("Second FirmwareVersion failed: %v", err)
	}
	if again != version {
		t.Errorf("Second query returned %q, want %q", again, version)
	}

	checkWrites(t, transport, "M4002", "M4002")
	if transport.flushes != 2 {
		t.Errorf("Expected 2 input flushes, got %d", transport.flushes)
	}
}

func TestState(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok B:0/0 X:0.000 Y:0.000 Z:151.900 F:0/0 D:31540/0/1 \r\n")
	printer := openTestPrinter(t, transport)

	raw, err := printer.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if raw != "ok B:0/0 X:0.000 Y:0.000 Z:151.900 F:0/0 D:31540/0/1 \r\n" {
		t.Errorf("State returned %q", raw)
	}
	checkWrites(t, transport, "M4000")
}

func TestStateReport(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok B:0/0 X:0.000 Y:0.000 Z:151.900 F:0/0 D:31540/0/1 \r\n")
	printer := openTestPrinter(t, transport)

	report, err := printer.StateReport()
	if err != nil {
		t.Fatalf("StateReport failed: %v", err)
	}
	if math.Abs(report.ZPosition-151.9) > 1e-9 {
		t.Errorf("ZPosition = %v, want 151.9", report.ZPosition)
	}
	if report.CurrentByte != 31540 || report.TotalBytes != 0 || !report.Paused {
		t.Errorf("Unexpected report %+v", report)
	}
}

func TestPrintStatus(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantState   PrinterState
		wantCurrent *uint64
		wantTotal   *uint64
	}{
		{
			name:      "not printing",
			reply:     "Error:It's not printing now!\r\nok N:0\r\n",
			wantState: StateIdle,
		},
		{
			name:        "starting print",
			reply:       "SD printing byte 0/23543968\r\nok N:0\r\n",
			wantState:   StateStartingPrint,
			wantCurrent: uint64Ptr(0),
			wantTotal:   uint64Ptr(23543968),
		},
		{
			name:        "printing",
			reply:       "SD printing byte 23012/23543968\r\nok N:0\r\n",
			wantState:   StatePrinting,
			wantCurrent: uint64Ptr(23012),
			wantTotal:   uint64Ptr(23543968),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}
			transport.queue(tt.reply)
			printer := openTestPrinter(t, transport)

			status, err := printer.PrintStatus()
			if err != nil {
				t.Fatalf("PrintStatus failed: %v", err)
			}
			if status.State != tt.wantState {
				t.Errorf("State = %v, want %v", status.State, tt.wantState)
			}
			checkUint64Ptr(t, "CurrentByte", status.CurrentByte, tt.wantCurrent)
			checkUint64Ptr(t, "TotalBytes", status.TotalBytes, tt.wantTotal)
			checkWrites(t, transport, "M27")
		})
	}
}

func TestZPosition(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok C: X:0.000000 Y:0.000000 Z:155.000000 E:0.000000\r\n")
	printer := openTestPrinter(t, transport)

	z, err := printer.ZPosition()
	if err != nil {
		t.Fatalf("ZPosition failed: %v", err)
	}
	if math.Abs(z-155.0) > 1e-9 {
		t.Errorf("ZPosition = %v, want 155.0", z)
	}
	checkWrites(t, transport, "M114")
}

func TestSelectedFile(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok 'LittleBBC.ctb'\r\n")
	printer := openTestPrinter(t, transport)

	filename, err := printer.SelectedFile()
	if err != nil {
		t.Fatalf("SelectedFile failed: %v", err)
	}
	if filename != "LittleBBC.ctb" {
		t.Errorf("Expected LittleBBC.ctb, got %q", filename)
	}
	checkWrites(t, transport, "M4006")
}

func TestSelectFile(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("File opened:lattice.ctb Size:26058253\r\nFile selected\r\nok N:0\r\n")
	printer := openTestPrinter(t, transport)

	if err := printer.SelectFile("lattice.ctb"); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
	checkWrites(t, transport, "M23 lattice.ctb")
}

func TestSelectMissingFile(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("//############Error!cann't open file foobar.ctb!\r\nopen failed, File :foobar.ctb\r\nok N:0\r\n")
	printer := openTestPrinter(t, transport)

	err := printer.SelectFile("foobar.ctb")
	var unexpected *UnexpectedResponseError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Expected UnexpectedResponseError, got %v", err)
	}
	if unexpected.Cmd != "M23 foobar.ctb" {
		t.Errorf("Cmd = %q, want M23 foobar.ctb", unexpected.Cmd)
	}
	// The command still went out before the reply was judged.
	checkWrites(t, transport, "M23 foobar.ctb")
}

func TestStartPrinting(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok N:0\r\n")
	printer := openTestPrinter(t, transport)

	if err := printer.StartPrinting("benchy.ctb"); err != nil {
		t.Fatalf("StartPrinting failed: %v", err)
	}
	checkWrites(t, transport, "M6030 'benchy.ctb'")
}

func TestStartPrintingWithInvalidResponse(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("foobar\r\n")
	printer := openTestPrinter(t, transport)

	err := printer.StartPrinting("benchy.ctb")
	var unexpected *UnexpectedResponseError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Expected UnexpectedResponseError, got %v", err)
	}
	checkWrites(t, transport, "M6030 'benchy.ctb'")
}

func TestStopPrinting(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok N:0\r\n")
	printer := openTestPrinter(t, transport)

	if err := printer.StopPrinting(); err != nil {
		t.Fatalf("StopPrinting failed: %v", err)
	}
	checkWrites(t, transport, "M33")
}

func TestStopPrintingWhenNotPrinting(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("Error:It's not printing now!\r\nok N:0\r\n")
	printer := openTestPrinter(t, transport)

	err := printer.StopPrinting()
	var unexpected *UnexpectedResponseError
	if !errors.As(err, &unexpected) {
		t.Fatalf("Expected UnexpectedResponseError, got %v", err)
	}
	checkWrites(t, transport, "M33")
}

func TestPauseAndResume(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok N:0\r\n", "ok N:0\r\n")
	printer := openTestPrinter(t, transport)

	if err := printer.PausePrinting(); err != nil {
		t.Fatalf("PausePrinting failed: %v", err)
	}
	if err := printer.ResumePrinting(); err != nil {
		t.Fatalf("ResumePrinting failed: %v", err)
	}
	checkWrites(t, transport, "M25", "M24")
}

func TestMoveBy(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok N:0\r\n", "ok N:0\r\n", "ok N:0\r\n")
	printer := openTestPrinter(t, transport)

	if err := printer.MoveBy(10); err != nil {
		t.Fatalf("MoveBy(10) failed: %v", err)
	}
	if err := printer.MoveBy(-10); err != nil {
		t.Fatalf("MoveBy(-10) failed: %v", err)
	}
	if err := printer.MoveByAtRate(15.3, 30); err != nil {
		t.Fatalf("MoveByAtRate(15.3, 30) failed: %v", err)
	}
	checkWrites(t, transport,
		"G0 Z10.0 F600 I0",
		"G0 Z-10.0 F600 I0",
		"G0 Z15.3 F30 I0",
	)
}

func TestMoveToHome(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok N:0\r\n")
	printer := openTestPrinter(t, transport)

	if err := printer.MoveToHome(); err != nil {
		t.Fatalf("MoveToHome failed: %v", err)
	}
	checkWrites(t, transport, "G28")
}

func TestStopMotors(t *testing.T) {
	transport := &fakeTransport{}
	printer := openTestPrinter(t, transport)

	// Fire-and-forget: no reply is queued and none is needed.
	if err := printer.StopMotors(); err != nil {
		t.Fatalf("StopMotors failed: %v", err)
	}
	checkWrites(t, transport, "M112")
}

func TestReboot(t *testing.T) {
	transport := &fakeTransport{}
	printer := openTestPrinter(t, transport)

	if err := printer.Reboot(0); err != nil {
		t.Fatalf("Reboot(0) failed: %v", err)
	}
	if err := printer.Reboot(123 * time.Millisecond); err != nil {
		t.Fatalf("Reboot(123ms) failed: %v", err)
	}
	checkWrites(t, transport, "M6040 I0", "M6040 I123")
}

func TestExchange(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok N:0\r\n")
	printer := openTestPrinter(t, transport)

	raw, err := printer.Exchange(Command{Verb: "M4001"})
	if err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	if raw != "ok N:0\r\n" {
		t.Errorf("Exchange returned %q", raw)
	}
	checkWrites(t, transport, "M4001")
}

func TestTerminator(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok V4.3.4_LCDC\n")
	printer := openTestPrinter(t, transport, WithTerminator("\r\n"))

	if _, err := printer.FirmwareVersion(); err != nil {
		t.Fatalf("FirmwareVersion failed: %v", err)
	}
	checkWrites(t, transport, "M4002\r\n")
}

func TestNoResponse(t *testing.T) {
	transport := &fakeTransport{} // nothing queued: reads return empty
	printer := openTestPrinter(t, transport)

	_, err := printer.FirmwareVersion()
	if !errors.Is(err, ErrNoResponse) {
		t.Errorf("Expected ErrNoResponse, got %v", err)
	}
}

func TestTruncatedResponse(t *testing.T) {
	transport := &fakeTransport{}
	transport.queue("ok V4.3.4") // timeout hit before the newline arrived
	printer := openTestPrinter(t, transport)

	_, err := printer.FirmwareVersion()
	if !errors.Is(err, ErrTruncatedResponse) {
		t.Errorf("Expected ErrTruncatedResponse, got %v", err)
	}
}

func TestUndecodableResponse(t *testing.T) {
	transport := &fakeTransport{replies: [][]byte{{0xff, 0xfe, '\n'}}}
	printer := openTestPrinter(t, transport)

	_, err := printer.FirmwareVersion()
	if !errors.Is(err, ErrUndecodableResponse) {
		t.Errorf("Expected ErrUndecodableResponse, got %v", err)
	}
}

func TestWriteError(t *testing.T) {
	cause := errors.New("input/output error")
	transport := &fakeTransport{writeErr: cause}
	printer := openTestPrinter(t, transport)

	err := printer.MoveToHome()
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if transportErr.Op != "write" {
		t.Errorf("Op = %q, want write", transportErr.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected the transport cause to be reachable with errors.Is")
	}
}

func TestShortWrite(t *testing.T) {
	transport := &fakeTransport{short: true}
	printer := openTestPrinter(t, transport)

	err := printer.StopMotors()
	if !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Expected io.ErrShortWrite, got %v", err)
	}
}

func TestReadError(t *testing.T) {
	cause := errors.New("device reports readiness to read but returned no data")
	transport := &fakeTransport{readErr: cause}
	printer := openTestPrinter(t, transport)

	_, err := printer.FirmwareVersion()
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if transportErr.Op != "read" {
		t.Errorf("Op = %q, want read", transportErr.Op)
	}
}

func TestFlushError(t *testing.T) {
	cause := errors.New("bad file descriptor")
	transport := &fakeTransport{flushErr: cause}
	printer := openTestPrinter(t, transport)

	err := printer.StopMotors()
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %v", err)
	}
	if transportErr.Op != "flush" {
		t.Errorf("Op = %q, want flush", transportErr.Op)
	}
}

func TestOpenerFailure(t *testing.T) {
	cause := errors.New("permission denied")
	printer, err := NewPrinter(WithOpener(func(Config) (Transport, error) {
		return nil, cause
	}))
	if err != nil {
		t.Fatalf("NewPrinter failed: %v", err)
	}

	err = printer.Open()
	if !errors.Is(err, cause) {
		t.Errorf("Expected the opener failure to be reachable, got %v", err)
	}
	if printer.Connected() {
		t.Error("Expected printer to stay disconnected after a failed Open")
	}
}
