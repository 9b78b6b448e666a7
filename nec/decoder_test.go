package nec

import (
	"testing"
	"time"

	"github.com/sparques/irtag"
)

// feedPairs plays pairs into d as an active-low detector would see them,
// starting with a falling edge at start. It returns the time after the last pair.
func feedPairs(d irtag.EdgeHandler, start uint32, pairs ...irtag.TimePair) uint32 {
	now := start
	for _, p := range pairs {
		d.HandleEdge(irtag.Falling, now)
		now += micros(p[0])
		d.HandleEdge(irtag.Rising, now)
		now += micros(p[1])
	}
	return now
}

// feedSpace emits a short burst followed by a space of us microseconds.
func feedSpace(d irtag.EdgeHandler, now, us uint32) uint32 {
	return feedPairs(d, now, irtag.TimePair{Pulse, time.Duration(us) * time.Microsecond})
}

func micros(d time.Duration) uint32 {
	return uint32(d / time.Microsecond)
}

func TestDecoderRoundTrip(t *testing.T) {
	addresses := []uint16{0x0000, 0x0001, 0x00FF, 0x1234, 0x8000, 0xA5A5, 0xFFFF}

	for _, addr := range addresses {
		for cmd := 0; cmd <= 0xFF; cmd++ {
			d := NewDecoder()
			sent := NewFrame(addr, uint8(cmd))
			feedPairs(d, 100_000, sent.MarshalFrame()...)

			got, ok := d.Take()
			if !ok {
				t.Fatalf("addr=0x%04X cmd=0x%02X: no frame decoded", addr, cmd)
			}
			if got != sent {
				t.Fatalf("addr=0x%04X cmd=0x%02X: decoded %v, want %v", addr, cmd, got, sent)
			}
			if got.Address() != addr || got.Command() != uint8(cmd) || !got.Valid() {
				t.Fatalf("decoded fields addr=0x%04X cmd=0x%02X valid=%v", got.Address(), got.Command(), got.Valid())
			}
		}
	}
}

func TestDecoderConcreteFrame(t *testing.T) {
	d := NewDecoder()
	feedPairs(d, 50_000, NewFrame(0x1234, 0x99).MarshalFrame()...)

	f, ok := d.Take()
	if !ok {
		t.Fatal("Take() found no frame")
	}
	if f != 0x66991234 {
		t.Fatalf("decoded %v, want 0x66991234", f)
	}
	if d.Receiving() {
		t.Error("decoder still receiving after a complete frame")
	}
	if d.Bits() != 0 {
		t.Errorf("Bits() = %d after complete frame, want 0", d.Bits())
	}
	if s := d.Stats(); s.Frames != 1 || s.Aborts != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestDecoderIgnoresNoiseWhileAwaiting(t *testing.T) {
	spaces := []uint32{10, 560, 1690, 3000, 4000, 5000, 7000, 60_000}

	for _, us := range spaces {
		d := NewDecoder()
		feedSpace(d, 10_000, us)
		// the closing falling edge is the one that classifies the space
		d.HandleEdge(irtag.Falling, 10_000+micros(Pulse)+us)

		if d.Receiving() {
			t.Errorf("space %dus moved decoder out of awaiting start", us)
		}
		if _, ok := d.Take(); ok {
			t.Errorf("space %dus produced a frame", us)
		}
	}
}

func TestDecoderMidFrameCorruption(t *testing.T) {
	for _, n := range []int{1, 7, 16, 31} {
		d := NewDecoder()
		good := NewFrame(0xBEEF, 0x42)
		pairs := good.MarshalFrame()

		// leading burst plus n good bits, then a 3ms space that fits no window.
		// The space of the last pair is only measured by the next falling edge.
		now := feedPairs(d, 20_000, pairs[:n+1]...)
		if !d.Receiving() || d.Bits() != n-1 {
			t.Fatalf("n=%d: before corruption Receiving=%v Bits=%d", n, d.Receiving(), d.Bits())
		}
		now = feedSpace(d, now, 3000)
		d.HandleEdge(irtag.Falling, now)

		if d.Receiving() {
			t.Fatalf("n=%d: decoder still receiving after invalid space", n)
		}
		if d.Bits() != 0 {
			t.Fatalf("n=%d: Bits() = %d after reset, want 0", n, d.Bits())
		}
		if _, ok := d.Take(); ok {
			t.Fatalf("n=%d: partial frame was published", n)
		}

		fresh := NewFrame(0x0102, 0x03)
		feedPairs(d, now+20_000, fresh.MarshalFrame()...)
		got, ok := d.Take()
		if !ok || got != fresh {
			t.Fatalf("n=%d: after recovery got %v (%v), want %v", n, got, ok, fresh)
		}
		if s := d.Stats(); s.Aborts != 1 || s.Frames != 1 {
			t.Errorf("n=%d: Stats() = %+v", n, s)
		}
	}
}

func TestDecoderRepeatAbortsFrame(t *testing.T) {
	d := NewDecoder()
	pairs := NewFrame(0x1234, 0x99).MarshalFrame()

	now := feedPairs(d, 5_000, pairs[:10]...)
	now = feedPairs(d, now, irtag.TimePair{Pulse, RepeatSpace})
	d.HandleEdge(irtag.Falling, now)

	if d.Receiving() || d.Bits() != 0 {
		t.Fatalf("after repeat space Receiving=%v Bits=%d", d.Receiving(), d.Bits())
	}
	if _, ok := d.Take(); ok {
		t.Fatal("repeat space published a frame")
	}
	if s := d.Stats(); s.Repeats != 1 {
		t.Errorf("Stats().Repeats = %d, want 1", s.Repeats)
	}
}

func TestDecoderRepeatCodeWhileIdle(t *testing.T) {
	d := NewDecoder()
	feedPairs(d, 5_000, RepeatCode{}.MarshalFrame()...)

	if d.Receiving() {
		t.Fatal("repeat code started a frame")
	}
	if s := d.Stats(); s.Repeats != 1 {
		t.Errorf("Stats().Repeats = %d, want 1", s.Repeats)
	}
}

func TestDecoderClockWrap(t *testing.T) {
	d := NewDecoder()
	sent := NewFrame(0x4321, 0x17)
	// the frame lasts about 70ms, so start 20ms before the counter wraps
	start := ^uint32(0) - 20_000
	feedPairs(d, start, sent.MarshalFrame()...)

	got, ok := d.Take()
	if !ok || got != sent {
		t.Fatalf("across wrap got %v (%v), want %v", got, ok, sent)
	}
}

func TestDecoderTakeClearsFlag(t *testing.T) {
	d := NewDecoder()
	feedPairs(d, 1_000, NewFrame(1, 2).MarshalFrame()...)

	if _, ok := d.Take(); !ok {
		t.Fatal("first Take() found no frame")
	}
	if _, ok := d.Take(); ok {
		t.Fatal("second Take() returned the same frame again")
	}
}

func TestDecoderNewerFrameReplacesUnclaimed(t *testing.T) {
	d := NewDecoder()
	now := feedPairs(d, 1_000, NewFrame(1, 1).MarshalFrame()...)
	feedPairs(d, now+40_000, NewFrame(2, 2).MarshalFrame()...)

	got, ok := d.Take()
	if !ok || got != NewFrame(2, 2) {
		t.Fatalf("Take() = %v (%v), want second frame", got, ok)
	}
}

func TestDecoderReset(t *testing.T) {
	d := NewDecoder()
	pairs := NewFrame(0x1234, 0x99).MarshalFrame()
	feedPairs(d, 1_000, pairs[:5]...)
	d.Reset()

	if d.Receiving() || d.Bits() != 0 {
		t.Fatalf("after Reset Receiving=%v Bits=%d", d.Receiving(), d.Bits())
	}
}

func TestDecoderHandleEdgeDoesNotAllocate(t *testing.T) {
	d := NewDecoder()
	pairs := NewFrame(0x1234, 0x99).MarshalFrame()
	allocs := testing.AllocsPerRun(100, func() {
		now := uint32(1_000)
		for _, p := range pairs {
			d.HandleEdge(irtag.Falling, now)
			now += micros(p[0])
			d.HandleEdge(irtag.Rising, now)
			now += micros(p[1])
		}
		d.Take()
	})
	if allocs != 0 {
		t.Errorf("HandleEdge allocated %v times per frame", allocs)
	}
}
