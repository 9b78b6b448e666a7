package nec

import "fmt"

// ChecksumError reports a fully received frame whose inverted command byte is
// not the complement of its command byte.
type ChecksumError struct {
	Command  uint8
	Inverted uint8 // as received
	Expected uint8 // ^Command
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("nec: checksum error: cmd=0x%02X, inv=0x%02X, expected inv=0x%02X",
		e.Command, e.Inverted, e.Expected)
}
