//go:build tinygo

package irtag

import (
	. "machine"

	"github.com/sparques/pwm"
)

// PWMEmitter modulates an IR LED on pin with a 38kHz carrier.
type PWMEmitter struct {
	pin    Pin
	pgroup pwm.Group
	ch     uint8
	top    uint32
}

func NewPWMEmitter(pin Pin) *PWMEmitter {
	pin.Configure(PinConfig{Mode: PinPWM})
	pgroup := pwm.Get(pin)
	pgroup.Configure(PWMConfig{Period: uint64(1e9) / uint64(Freq38Khz)})
	ch, _ := pgroup.Channel(pin)
	pgroup.Set(ch, 0)
	return &PWMEmitter{
		pin:    pin,
		pgroup: pgroup,
		ch:     ch,
		top:    pgroup.Top(),
	}
}

// SetDutyCycle implements Emitter.
func (e *PWMEmitter) SetDutyCycle(percent uint8) {
	if percent > 100 {
		percent = 100
	}
	e.pgroup.Set(e.ch, e.top*uint32(percent)/100)
}
