package sim

import (
	"math/rand"

	"github.com/sparques/irtag"
)

var (
	_ irtag.Emitter = (*Emitter)(nil)
	_ irtag.Clock   = (*Clock)(nil)
)

// Emitter is an irtag.Emitter whose light lands on an ideal demodulating
// receiver. Carrier on pulls the receiver output low (a Falling edge), carrier
// off releases it (a Rising edge).
type Emitter struct {
	clock  *Clock
	target irtag.EdgeHandler
	on     bool

	jitter int
	rng    *rand.Rand
}

// NewEmitter returns an emitter that reports edges to target, stamped with
// clock's reading.
func NewEmitter(clock *Clock, target irtag.EdgeHandler) *Emitter {
	return &Emitter{clock: clock, target: target}
}

// SetJitter shifts every reported edge by a uniformly random offset in
// [-us, +us] microseconds. The sequence is fixed by seed.
func (e *Emitter) SetJitter(us int, seed int64) {
	e.jitter = us
	e.rng = rand.New(rand.NewSource(seed))
}

// SetDutyCycle implements irtag.Emitter.
func (e *Emitter) SetDutyCycle(percent uint8) {
	on := percent > 0
	if on == e.on {
		return
	}
	e.on = on

	if e.target == nil {
		return
	}
	now := e.clock.Micros() + uint32(e.offset())
	if on {
		e.target.HandleEdge(irtag.Falling, now)
	} else {
		e.target.HandleEdge(irtag.Rising, now)
	}
}

// On reports whether the carrier is currently on.
func (e *Emitter) On() bool {
	return e.on
}

func (e *Emitter) offset() int32 {
	if e.jitter <= 0 || e.rng == nil {
		return 0
	}
	return int32(e.rng.Intn(2*e.jitter+1) - e.jitter)
}
