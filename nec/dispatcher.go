package nec

// Validate checks the frame's inverted command byte. It returns a
// *ChecksumError when the frame is corrupt.
func Validate(f Frame) error {
	if f.Valid() {
		return nil
	}
	return &ChecksumError{
		Command:  f.Command(),
		Inverted: f.InvertedCommand(),
		Expected: ^f.Command(),
	}
}

// FrameSource hands over completed frames. *Decoder implements it.
type FrameSource interface {
	Take() (Frame, bool)
}

// Dispatcher drains a FrameSource from the polling loop and routes each frame
// to the hit callback or, if the checksum fails, to the diagnostic callback.
type Dispatcher struct {
	Source FrameSource

	// OnValidHit is called with the sender's address and command for every
	// frame that passes the checksum.
	OnValidHit func(address uint16, command uint8)

	// OnChecksumFailure is optional.
	OnChecksumFailure func(command, invertedReceived, invertedExpected uint8)
}

func NewDispatcher(src FrameSource, onValidHit func(address uint16, command uint8)) *Dispatcher {
	return &Dispatcher{
		Source:     src,
		OnValidHit: onValidHit,
	}
}

// PollAndDispatch takes at most one frame from the source and dispatches it.
// It reports whether a frame was taken. Call it at least once per frame period
// or frames will be overwritten before they are seen.
func (d *Dispatcher) PollAndDispatch() bool {
	f, ok := d.Source.Take()
	if !ok {
		return false
	}

	if !f.Valid() {
		if d.OnChecksumFailure != nil {
			d.OnChecksumFailure(f.Command(), f.InvertedCommand(), ^f.Command())
		}
		return true
	}

	if d.OnValidHit != nil {
		d.OnValidHit(f.Address(), f.Command())
	}
	return true
}
