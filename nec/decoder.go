package nec

import (
	"sync/atomic"

	"github.com/sparques/irtag"
)

const readyBit = 1 << 32

// Decoder is an irtag.EdgeHandler that reassembles NEC frames from the edges
// of an active-low demodulating receiver.
//
// Only falling edges advance the state machine: the time since the previous
// rising edge is the space that encodes one symbol. Rising edges just mark
// where the next space begins.
//
// HandleEdge is the single producer and runs in interrupt context; Take is the
// single consumer. Everything except the mailbox and the counters is touched by
// the producer alone.
type Decoder struct {
	lastEdge uint32
	partial  uint32
	bits     atomic.Uint32
	awaiting atomic.Bool

	// mailbox holds the last completed frame in the low word and the ready
	// flag in bit 32, so both are published by one store.
	mailbox atomic.Uint64

	frames  atomic.Uint32
	repeats atomic.Uint32
	aborts  atomic.Uint32
}

func NewDecoder() *Decoder {
	d := &Decoder{}
	d.awaiting.Store(true)
	return d
}

// HandleEdge implements irtag.EdgeHandler.
func (d *Decoder) HandleEdge(edge irtag.Edge, now uint32) {
	// unsigned subtraction survives one wrap of the clock
	space := now - d.lastEdge
	d.lastEdge = now

	if edge == irtag.Rising {
		return
	}

	sym := Classify(space)

	if d.awaiting.Load() {
		switch sym {
		case SymbolLeading:
			d.partial = 0
			d.bits.Store(0)
			d.awaiting.Store(false)
		case SymbolRepeat:
			d.repeats.Add(1)
		}
		return
	}

	bits := d.bits.Load()
	switch sym {
	case SymbolZero:
		d.partial &^= 1 << bits
	case SymbolOne:
		d.partial |= 1 << bits
	case SymbolRepeat:
		d.repeats.Add(1)
		d.restart()
		return
	default:
		d.aborts.Add(1)
		d.restart()
		return
	}

	bits++
	if bits < FrameBits {
		d.bits.Store(bits)
		return
	}

	d.mailbox.Store(readyBit | uint64(d.partial))
	d.frames.Add(1)
	d.restart()
}

func (d *Decoder) restart() {
	d.bits.Store(0)
	d.awaiting.Store(true)
}

// Take hands over the most recently completed frame, if one is waiting, and
// clears the ready flag. A frame that completes before the previous one was
// taken replaces it.
func (d *Decoder) Take() (Frame, bool) {
	v := d.mailbox.Swap(0)
	if v&readyBit == 0 {
		return 0, false
	}
	return Frame(uint32(v)), true
}

// Receiving reports whether a leading burst has been seen and bits are being
// collected.
func (d *Decoder) Receiving() bool {
	return !d.awaiting.Load()
}

// Bits is the number of bits collected for the frame in progress.
func (d *Decoder) Bits() int {
	return int(d.bits.Load())
}

// Reset drops any frame in progress and any unclaimed completed frame. It must
// not race with HandleEdge; stop the receiver first.
func (d *Decoder) Reset() {
	d.partial = 0
	d.restart()
	d.mailbox.Store(0)
}

// DecoderStats counts what the decoder has seen since it was created.
type DecoderStats struct {
	Frames  uint32 // frames completed
	Repeats uint32 // repeat spaces seen, whether idle or mid-frame
	Aborts  uint32 // frames abandoned on an unrecognised space
}

func (d *Decoder) Stats() DecoderStats {
	return DecoderStats{
		Frames:  d.frames.Load(),
		Repeats: d.repeats.Load(),
		Aborts:  d.aborts.Load(),
	}
}
