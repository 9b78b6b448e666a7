package irtag

import (
	"time"
)

// TxDevice drives an Emitter through a sequence of on/off TimePairs.
//
// Sending is synchronous: SendPair and friends block the caller for the whole
// burst and cannot be interrupted once started.
type TxDevice struct {
	emitter Emitter
	duty    uint8

	// Delay waits out one on or off interval. It defaults to time.Sleep; the
	// simulator replaces it with a virtual clock.
	Delay func(time.Duration)
}

func NewTxDevice(e Emitter) *TxDevice {
	e.SetDutyCycle(0)
	return &TxDevice{
		emitter: e,
		duty:    DefaultDutyCycle,
		Delay:   time.Sleep,
	}
}

// SetDutyCycle changes the carrier duty used for the "on" half of each pair.
// Values above 100 are clamped.
func (tx *TxDevice) SetDutyCycle(percent uint8) {
	if percent > 100 {
		percent = 100
	}
	tx.duty = percent
}

func (tx *TxDevice) DutyCycle() uint8 {
	return tx.duty
}

func (tx *TxDevice) SendPair(pair TimePair) {
	tx.emitter.SetDutyCycle(tx.duty)
	tx.wait(pair[0])
	tx.emitter.SetDutyCycle(0)
	tx.wait(pair[1])
}

func (tx *TxDevice) SendPairs(pairs ...TimePair) {
	for _, p := range pairs {
		tx.SendPair(p)
	}
}

func (tx *TxDevice) SendFrame(fm FrameMarshaller) {
	tx.SendPairs(fm.MarshalFrame()...)
}

func (tx *TxDevice) SendFrames(fms ...FrameMarshaller) {
	for _, fm := range fms {
		tx.SendFrame(fm)
	}
}

func (tx *TxDevice) wait(d time.Duration) {
	if d <= 0 {
		return
	}
	tx.Delay(d)
}
