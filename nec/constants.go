package nec

import "time"

// NEC protocol references
// https://www.sbprojects.net/knowledge/ir/nec.php
// https://techdocs.altium.com/display/FPGA/NEC+Infrared+Transmission+Protocol
const (
	LeadingPulse = 9000 * time.Microsecond
	LeadingSpace = 4500 * time.Microsecond
	Pulse        = 560 * time.Microsecond
	ZeroSpace    = 560 * time.Microsecond
	OneSpace     = 1690 * time.Microsecond
	RepeatSpace  = 2250 * time.Microsecond

	// RepeatPeriod is the start-to-start spacing of repeat codes on a held
	// remote button.
	RepeatPeriod = 108 * time.Millisecond

	FrameBits = 32
)

// Window is an open interval of microseconds.
type Window struct {
	Min, Max uint32
}

// Contains reports whether Min < us < Max.
func (w Window) Contains(us uint32) bool {
	return us > w.Min && us < w.Max
}

// Accepted space durations. The windows are disjoint so any measured space
// maps to at most one symbol.
var (
	LeadingWindow = Window{4000, 5000}
	ZeroWindow    = Window{400, 800}
	OneWindow     = Window{1500, 1900}
	RepeatWindow  = Window{2000, 2500}
)
