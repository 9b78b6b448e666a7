package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sparques/irtag"
	"github.com/sparques/irtag/nec"
)

type decodeFlags struct {
	frame string
}

func newDecodeCmd() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode [space-us...]",
		Short: "Decode measured space durations or check a raw frame",
		Long: `Feed a list of measured spaces (microseconds between the end of one
burst and the start of the next) through the NEC decoder, or check the
checksum of a raw 32-bit frame given with --frame.

Example:
  irtag decode 4500 560 560 1690 ...
  irtag decode --frame 0x66991234`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.frame, "frame", "", "Raw 32-bit frame to check instead of decoding spaces")

	return cmd
}

func runDecode(out io.Writer, flags *decodeFlags, args []string) error {
	dec := nec.NewDecoder()

	if flags.frame != "" {
		v, err := parseUint("frame", flags.frame, 32)
		if err != nil {
			return err
		}
		return report(out, nec.Frame(v))
	}

	if len(args) == 0 {
		return fmt.Errorf("no spaces given; pass microsecond durations or --frame")
	}

	now := uint32(1_000_000)
	pulse := us(nec.Pulse)
	for i, a := range args {
		space, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return fmt.Errorf("space #%d %q: %w", i+1, a, err)
		}
		dec.HandleEdge(irtag.Falling, now)
		now += pulse
		dec.HandleEdge(irtag.Rising, now)
		now += uint32(space)
		fmt.Fprintf(out, "%6dus  %s\n", space, nec.Classify(uint32(space)))
	}
	// the next burst closes the last space
	dec.HandleEdge(irtag.Falling, now)

	f, ok := dec.Take()
	if !ok {
		fmt.Fprintf(out, "no complete frame (%d bits collected)\n", dec.Bits())
		return nil
	}
	return report(out, f)
}

func report(out io.Writer, f nec.Frame) error {
	src := &oneFrame{f: f, ok: true}
	var result error
	disp := nec.NewDispatcher(src, func(address uint16, command uint8) {
		fmt.Fprintf(out, "frame %v: address 0x%04X command 0x%02X, checksum ok\n", f, address, command)
	})
	disp.OnChecksumFailure = func(command, inverted, expected uint8) {
		result = &nec.ChecksumError{Command: command, Inverted: inverted, Expected: expected}
		fmt.Fprintf(out, "frame %v: %v\n", f, result)
	}
	disp.PollAndDispatch()
	return result
}

type oneFrame struct {
	f  nec.Frame
	ok bool
}

func (o *oneFrame) Take() (nec.Frame, bool) {
	ok := o.ok
	o.ok = false
	return o.f, ok
}
