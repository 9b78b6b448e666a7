//go:build tinygo

package irtag

import (
	. "machine"
	"time"
)

// MicrosClock reads the runtime monotonic clock truncated to 32 bits, which
// wraps roughly every 71 minutes; far longer than any interval a decoder measures.
type MicrosClock struct{}

func (MicrosClock) Micros() uint32 {
	return uint32(time.Now().UnixMicro())
}

type RxDevice struct {
	pin     Pin
	clock   Clock
	handler EdgeHandler
}

func NewRxDevice(pin Pin, handler EdgeHandler) *RxDevice {
	// the most common receivers have a pull up pin builtin
	// but in the future, may want to add the option to use PinPullupInput
	pin.Configure(PinConfig{Mode: PinInput})
	return &RxDevice{
		pin:     pin,
		clock:   MicrosClock{},
		handler: handler,
	}
}

func (rx *RxDevice) interruptHandler(interruptPin Pin) {
	now := rx.clock.Micros()
	if interruptPin.Get() {
		rx.handler.HandleEdge(Rising, now)
		return
	}
	rx.handler.HandleEdge(Falling, now)
}

// Start sets the interrupt handler and thus starts processing signals.
func (rx *RxDevice) Start() {
	rx.pin.SetInterrupt(PinFalling|PinRising, rx.interruptHandler)
}

// Stop disables the interrupt handler.
func (rx *RxDevice) Stop() {
	rx.pin.SetInterrupt(PinFalling|PinRising, nil)
}
