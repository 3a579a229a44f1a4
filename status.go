package mariner

import (
	"regexp"
	"strconv"
	"strings"
)

// PrinterState describes what the controller is doing, derived from the
// latest status reply. It is recomputed on every query and never stored.
type PrinterState int

const (
	StateUnknown PrinterState = iota
	StateIdle
	StateStartingPrint
	StatePrinting
	StatePaused
)

func (s PrinterState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStartingPrint:
		return "STARTING_PRINT"
	case StatePrinting:
		return "PRINTING"
	case StatePaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// PrintStatus is the decoded result of a print-status query. The byte
// counters are only present while a print is starting or running; both are
// nil when the printer is idle.
type PrintStatus struct {
	State       PrinterState
	CurrentByte *uint64
	TotalBytes  *uint64
}

// Progress reports the fraction of the selected file already consumed, in
// [0, 1]. The second return is false when the counters are absent or the
// total is zero.
func (ps PrintStatus) Progress() (float64, bool) {
	if ps.CurrentByte == nil || ps.TotalBytes == nil || *ps.TotalBytes == 0 {
		return 0, false
	}
	return float64(*ps.CurrentByte) / float64(*ps.TotalBytes), true
}

var (
	firmwareVersionRe = regexp.MustCompile(`^ok ([A-Za-z0-9_.]+)$`)
	selectedFileRe    = regexp.MustCompile(`^ok '(.+)'$`)
	sdPrintingRe      = regexp.MustCompile(`SD printing byte (\d+)/(\d+)`)
)

// notPrintingText is the firmware's complaint when a print-related command
// arrives while nothing is printing. The leading "Error:" prefix is left off
// so the check survives the firmware's inconsistent prefixing.
const notPrintingText = "It's not printing now!"

// classifyPrintStatus derives the printer state from an M27 reply. A byte
// offset of zero means the firmware is still heating/preparing, which is the
// only wire-visible difference between starting and printing.
func classifyPrintStatus(raw string) (PrintStatus, bool) {
	if strings.Contains(raw, notPrintingText) {
		return PrintStatus{State: StateIdle}, true
	}
	m := sdPrintingRe.FindStringSubmatch(raw)
	if m == nil {
		return PrintStatus{}, false
	}
	current, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return PrintStatus{}, false
	}
	total, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return PrintStatus{}, false
	}
	state := StatePrinting
	if current == 0 {
		state = StateStartingPrint
	}
	return PrintStatus{State: state, CurrentByte: &current, TotalBytes: &total}, true
}

func parseFirmwareVersion(raw string) (string, bool) {
	m := firmwareVersionRe.FindStringSubmatch(strings.TrimRight(raw, "\r\n"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseSelectedFile(raw string) (string, bool) {
	m := selectedFileRe.FindStringSubmatch(strings.TrimRight(raw, "\r\n"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseZPosition extracts the Z coordinate from an M114 position report,
// e.g. "ok C: X:0.000000 Y:0.000000 Z:155.000000 E:0.000000".
func parseZPosition(raw string) (float64, bool) {
	z, ok := StatusFields(raw)["Z"]
	if !ok {
		return 0, false
	}
	pos, err := strconv.ParseFloat(z, 64)
	if err != nil {
		return 0, false
	}
	return pos, true
}

// okAcknowledged reports whether the first non-empty reply line is an "ok"
// acknowledgment. Firmware error lines ("Error:...") always come first, so
// an "ok" trailing an error does not count.
func okAcknowledged(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "ok")
	}
	return false
}

// StatusFields tokenizes a KEY:value status line such as the M4000 report
// ("ok B:0/0 X:0.000 Y:0.000 Z:151.900 F:0/0 D:31540/0/1") into a map.
// Tokens without a colon (like the leading "ok") are skipped. Structured
// interpretation of a raw state line is deliberately the caller's concern;
// this helper is the shared first step.
func StatusFields(raw string) map[string]string {
	fields := make(map[string]string)
	for _, token := range strings.Fields(raw) {
		key, value, found := strings.Cut(token, ":")
		if !found || key == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}

// StateReport is the structured view of an M4000 full-state line that the
// CLI presents. The D token carries current/total/paused print counters.
type StateReport struct {
	ZPosition   float64
	CurrentByte uint64
	TotalBytes  uint64
	Paused      bool
}

// ParseStateReport interprets the fields of an M4000 reply. The firmware
// always sends Z and D tokens; their absence marks the reply as something
// other than a state report.
func ParseStateReport(raw string) (StateReport, error) {
	fields := StatusFields(raw)

	var report StateReport
	z, ok := fields["Z"]
	if !ok {
		return StateReport{}, newParseError("Z token missing", raw)
	}
	pos, err := strconv.ParseFloat(z, 64)
	if err != nil {
		return StateReport{}, newParseError("malformed Z token", raw)
	}
	report.ZPosition = pos

	d, ok := fields["D"]
	if !ok {
		return StateReport{}, newParseError("D token missing", raw)
	}
	parts := strings.Split(d, "/")
	if len(parts) != 3 {
		return StateReport{}, newParseError("malformed D token", raw)
	}
	if report.CurrentByte, err = strconv.ParseUint(parts[0], 10, 64); err != nil {
		return StateReport{}, newParseError("malformed D token", raw)
	}
	if report.TotalBytes, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
		return StateReport{}, newParseError("malformed D token", raw)
	}
	report.Paused = parts[2] == "1"

	return report, nil
}

func newParseError(reason, raw string) error {
	return &UnexpectedResponseError{
		Cmd:      cmdState.String(),
		Response: raw,
		Expected: "state report with KEY:value tokens (" + reason + ")",
	}
}
