package nec

import "github.com/sparques/irtag"

// Encoder sends NEC frames through a TxDevice.
//
// Both Transmit and TransmitRepeat hold the caller for the whole burst. There
// is no acknowledgement channel, so neither can fail in a way the sender could
// observe.
type Encoder struct {
	tx *irtag.TxDevice
}

func NewEncoder(tx *irtag.TxDevice) *Encoder {
	return &Encoder{tx: tx}
}

// Transmit sends address and command as one full frame and returns the frame
// that went out.
func (e *Encoder) Transmit(address uint16, command uint8) Frame {
	f := NewFrame(address, command)
	e.tx.SendFrame(f)
	return f
}

// TransmitRepeat sends a repeat code.
func (e *Encoder) TransmitRepeat() {
	e.tx.SendFrame(RepeatCode{})
}
