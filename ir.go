// Package irtag is the hardware-neutral half of an infrared hit channel: the
// carrier constants, on/off timing pairs, and the emitter and edge interfaces
// that protocol packages such as nec are written against.
//
// On TinyGo targets the package also provides PWMEmitter and RxDevice, which
// bind those interfaces to real pins.
package irtag

import "time"

const (
	// Freq38Khz is the most commonly used frequency for IR remotes
	Freq38Khz = 38000

	// DefaultDutyCycle is the carrier duty, in percent, used while a pulse is on.
	DefaultDutyCycle = 25
)

// TimePair encodes two durations used to encode an on-off or off-on amount of time.
type TimePair [2]time.Duration

// FrameMarshaller defines an interface for marshalling data to slice of TimePairs
type FrameMarshaller interface {
	MarshalFrame() []TimePair
}

// Emitter is anything that can modulate an IR LED. A percent of 0 turns the
// carrier off.
type Emitter interface {
	SetDutyCycle(percent uint8)
}

// Clock is a monotonic microsecond counter. Readings are allowed to wrap;
// consumers subtract them as unsigned values.
type Clock interface {
	Micros() uint32
}
