package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparques/irtag"
	"github.com/sparques/irtag/nec"
)

type encodeFlags struct {
	address string
	command string
	repeat  bool
}

func newEncodeCmd() *cobra.Command {
	flags := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Show the pulse/space timing of an NEC frame",
		Long: `Print the 32-bit frame and the burst/space sequence the emitter
drives for an address (player) and command (team).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.address, "address", "", "16-bit address (player ID), e.g. 0x1234")
	cmd.Flags().StringVar(&flags.command, "command", "", "8-bit command (team ID), e.g. 0x99")
	cmd.Flags().BoolVar(&flags.repeat, "repeat", false, "Show the repeat code instead of a frame")

	return cmd
}

func runEncode(out io.Writer, flags *encodeFlags) error {
	if flags.repeat {
		fmt.Fprintln(out, "repeat code")
		printPairs(out, nec.RepeatCode{}.MarshalFrame(), nil)
		return nil
	}

	if flags.address == "" || flags.command == "" {
		return fmt.Errorf("required flags --address and --command not set")
	}
	addr, err := parseUint("address", flags.address, 16)
	if err != nil {
		return err
	}
	cmdv, err := parseUint("command", flags.command, 8)
	if err != nil {
		return err
	}

	f := nec.NewFrame(uint16(addr), uint8(cmdv))
	fmt.Fprintf(out, "frame:    %v\n", f)
	fmt.Fprintf(out, "address:  0x%04X\n", f.Address())
	fmt.Fprintf(out, "command:  0x%02X (inverted 0x%02X)\n", f.Command(), f.InvertedCommand())
	fmt.Fprintf(out, "duration: %v\n", f.Duration())
	printPairs(out, f.MarshalFrame(), &f)
	return nil
}

func printPairs(out io.Writer, pairs []irtag.TimePair, f *nec.Frame) {
	fmt.Fprintf(out, "%-6s %-8s %8s %8s\n", "bit", "symbol", "pulse", "space")
	for i, p := range pairs {
		bit, sym := "", ""
		switch {
		case i == 0:
			sym = nec.Classify(us(p[1])).String()
		case i == len(pairs)-1:
			sym = "stop"
		case f != nil:
			bit = fmt.Sprint(i - 1)
			sym = nec.Classify(us(p[1])).String()
		}
		fmt.Fprintf(out, "%-6s %-8s %6dus %6dus\n", bit, sym, us(p[0]), us(p[1]))
	}
}

func us(d time.Duration) uint32 {
	return uint32(d / time.Microsecond)
}
