package mariner

import (
	"fmt"
	"time"
)

// Command is a single request to the controller board: an M-code or G-code
// verb plus an optional argument string. Commands are immutable values;
// rendering them to wire bytes is deterministic.
type Command struct {
	Verb string
	Arg  string
}

// String returns the command in its wire form, without line termination:
// the verb, then a single space and the argument when one is present.
func (c Command) String() string {
	if c.Arg == "" {
		return c.Verb
	}
	return c.Verb + " " + c.Arg
}

// bytes renders the command for the wire, appending the protocol line
// terminator. The Chitu boards accept unterminated commands, so the default
// terminator is empty; see WithTerminator.
func (c Command) bytes(terminator string) []byte {
	return []byte(c.String() + terminator)
}

// Fixed single-verb commands of the Chitu protocol.
var (
	cmdFirmwareVersion = Command{Verb: "M4002"}
	cmdState           = Command{Verb: "M4000"}
	cmdPrintStatus     = Command{Verb: "M27"}
	cmdZPosition       = Command{Verb: "M114"}
	cmdSelectedFile    = Command{Verb: "M4006"}
	cmdResumePrinting  = Command{Verb: "M24"}
	cmdPausePrinting   = Command{Verb: "M25"}
	cmdStopPrinting    = Command{Verb: "M33"}
	cmdMoveToHome      = Command{Verb: "G28"}
	cmdStopMotors      = Command{Verb: "M112"}
)

func selectFileCommand(filename string) Command {
	return Command{Verb: "M23", Arg: filename}
}

// startPrintCommand quotes the filename; the firmware requires the single
// quotes for M6030 but rejects them for M23.
func startPrintCommand(filename string) Command {
	return Command{Verb: "M6030", Arg: "'" + filename + "'"}
}

// moveByCommand renders a relative Z move. The firmware's parser is
// format-sensitive: the offset must carry exactly one fractional digit, with
// an explicit sign for negative values, which is what %.1f produces.
func moveByCommand(deltaMM float64, mmPerMin int) Command {
	return Command{Verb: "G0", Arg: fmt.Sprintf("Z%.1f F%d I0", deltaMM, mmPerMin)}
}

func rebootCommand(delay time.Duration) Command {
	return Command{Verb: "M6040", Arg: fmt.Sprintf("I%d", delay.Milliseconds())}
}
