package nec

import (
	"fmt"
	"time"

	"github.com/sparques/irtag"
)

// Frame is one NEC message as it appears on the wire, least significant bit
// first:
//
//	bits  0-15  address
//	bits 16-23  command
//	bits 24-31  ^command
type Frame uint32

// NewFrame assembles a frame, filling in the inverted command byte.
func NewFrame(address uint16, command uint8) Frame {
	return Frame(uint32(address) | uint32(command)<<16 | uint32(^command)<<24)
}

func (f Frame) Address() uint16 {
	return uint16(f & 0xFFFF)
}

func (f Frame) Command() uint8 {
	return uint8(f >> 16)
}

func (f Frame) InvertedCommand() uint8 {
	return uint8(f >> 24)
}

// Valid reports whether the inverted command byte is the complement of the
// command byte.
func (f Frame) Valid() bool {
	return f.InvertedCommand() == ^f.Command()
}

// Split breaks the frame into its fields, performing the checksum check.
func (f Frame) Split() (valid bool, address uint16, command uint8) {
	return f.Valid(), f.Address(), f.Command()
}

func (f Frame) String() string {
	return fmt.Sprintf("0x%08X", uint32(f))
}

var (
	LeadingPair = irtag.TimePair{LeadingPulse, LeadingSpace}
	ZeroPair    = irtag.TimePair{Pulse, ZeroSpace}
	OnePair     = irtag.TimePair{Pulse, OneSpace}
	RepeatPair  = irtag.TimePair{LeadingPulse, RepeatSpace}
	StopPair    = irtag.TimePair{Pulse, 0}
)

// MarshalFrame implements irtag.FrameMarshaller.
func (f Frame) MarshalFrame() []irtag.TimePair {
	out := make([]irtag.TimePair, FrameBits+2)

	// start of frame
	out[0] = LeadingPair

	for bit := 0; bit < FrameBits; bit++ {
		if (f>>bit)&1 == 1 {
			out[bit+1] = OnePair
		} else {
			out[bit+1] = ZeroPair
		}
	}

	// trailing burst so the receiver can measure the last space
	out[FrameBits+1] = StopPair

	return out
}

// Duration is how long the frame occupies the channel, stop pulse included.
func (f Frame) Duration() (d time.Duration) {
	for _, p := range f.MarshalFrame() {
		d += p[0] + p[1]
	}
	return d
}

// RepeatCode is the short "same as before" burst sent while a button is held.
type RepeatCode struct{}

// MarshalFrame implements irtag.FrameMarshaller.
func (RepeatCode) MarshalFrame() []irtag.TimePair {
	return []irtag.TimePair{RepeatPair, StopPair}
}

func (RepeatCode) Duration() time.Duration {
	return RepeatPair[0] + RepeatPair[1] + StopPair[0] + StopPair[1]
}
