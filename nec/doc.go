/*
Package nec sends and receives NEC infrared frames.

## Protocol

The carrier is 38kHz. Every symbol is a 560us burst followed by a space, and
it is the length of the space that carries the information:

	| Symbol  | Burst  | Space  | Accepted space |
	|^^^^^^^^^|^^^^^^^^|^^^^^^^^|^^^^^^^^^^^^^^^^|
	| Leading | 9000us | 4500us | 4000-5000us    |
	| Zero    |  560us |  560us |  400-800us     |
	| One     |  560us | 1690us | 1500-1900us    |
	| Repeat  | 9000us | 2250us | 2000-2500us    |

A frame is a leading burst, 32 bits sent least significant first, and a
final 560us stop burst so the last space can be measured:

	bits  0-15  address
	bits 16-23  command
	bits 24-31  ^command

The inverted command byte is the only integrity check. Nothing is ever
acknowledged or retransmitted on request.

## Receiving

Demodulating receivers such as the TSOP38438 idle high and pull low while
they see carrier. Decoder measures from each rising edge (burst ends) to the
following falling edge (next burst starts) and classifies that space. Anything
that doesn't fit a window throws the frame in progress away.

	dec := nec.NewDecoder()
	rx := irtag.NewRxDevice(machine.GPIO5, dec)
	rx.Start()

	disp := nec.NewDispatcher(dec, func(addr uint16, cmd uint8) {
		println("hit from", addr, "team", cmd)
	})
	for {
		disp.PollAndDispatch()
	}

## Sending

	tx := irtag.NewTxDevice(irtag.NewPWMEmitter(machine.GPIO4))
	nec.NewEncoder(tx).Transmit(0x1234, 0x99)
*/
package nec
