package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sparques/irtag/internal/config"
	"github.com/sparques/irtag/internal/logging"
	"github.com/sparques/irtag/lasertag"
	"github.com/sparques/irtag/nec"
	"github.com/sparques/irtag/sim"
)

type simulateFlags struct {
	configPath string
	shots      []string
	glitches   int
	dryRun     bool
	logLevel   string
}

func newSimulateCmd() *cobra.Command {
	flags := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run players against each other over a simulated IR channel",
		Long: `Build one device per configured player on a shared, simulated IR
medium and fire the requested shots. Every other device decodes each shot
and reports the hit. Time is virtual; the run finishes immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "YAML config file (default: built-in single player)")
	cmd.Flags().StringSliceVar(&flags.shots, "shots", nil, "Comma-separated player names to fire, in order (default: each player once)")
	cmd.Flags().IntVar(&flags.glitches, "glitches", 0, "Stray IR bursts injected before each shot")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate the config and list players without simulating")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Override log.level from the config")

	return cmd
}

func runSimulate(out, logOut io.Writer, flags *simulateFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.Load(flags.configPath); err != nil {
			return err
		}
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	if flags.dryRun {
		fmt.Fprintf(out, "%-12s %-8s %-6s\n", "name", "player", "team")
		for _, p := range cfg.Players {
			fmt.Fprintf(out, "%-12s 0x%04X   0x%02X\n", p.Name, p.Player, p.Team)
		}
		return nil
	}

	log, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	game, err := newGame(cfg, log)
	if err != nil {
		return err
	}

	shots := flags.shots
	if len(shots) == 0 {
		for _, p := range cfg.Players {
			shots = append(shots, p.Name)
		}
	}
	for _, name := range shots {
		if err := game.shoot(strings.TrimSpace(name), flags.glitches); err != nil {
			return err
		}
	}

	game.summary(out)
	return nil
}

type game struct {
	arena   *sim.Arena
	cfg     *config.Config
	names   []string
	devices map[string]*lasertag.Device
}

func newGame(cfg *config.Config, log *zap.Logger) (*game, error) {
	g := &game{
		arena:   sim.NewArena(),
		cfg:     cfg,
		devices: make(map[string]*lasertag.Device),
	}
	g.arena.SetJitter(cfg.Sim.JitterMicros, cfg.Sim.Seed)

	for _, p := range cfg.Players {
		node, err := g.arena.Join(p.Name)
		if err != nil {
			return nil, err
		}
		node.Tx.SetDutyCycle(cfg.Carrier.DutyCycle)

		dev := lasertag.New(
			lasertag.Identity{Player: p.Player, Team: p.Team},
			nec.NewEncoder(node.Tx),
			node.Decoder,
			nil,
			log.With(zap.String("name", p.Name)),
		)
		dev.Debounce = cfg.Debounce
		dev.Repeat = lasertag.RepeatPolicy{Count: cfg.Repeat.Count, Gap: cfg.Repeat.Gap}
		dev.Sleep = g.arena.Clock.Sleep

		g.names = append(g.names, p.Name)
		g.devices[p.Name] = dev
	}
	return g, nil
}

func (g *game) shoot(name string, glitches int) error {
	dev, ok := g.devices[name]
	if !ok {
		return fmt.Errorf("no player named %q", name)
	}

	for i := 0; i < glitches; i++ {
		g.arena.Glitch(time.Duration(100+50*i) * time.Microsecond)
		g.arena.Idle(3 * time.Millisecond)
	}
	g.arena.Idle(10 * time.Millisecond)

	dev.Fire()
	for _, n := range g.names {
		g.devices[n].Poll()
	}
	dev.Sleep(dev.Debounce)
	return nil
}

func (g *game) summary(out io.Writer) {
	fmt.Fprintf(out, "%-12s %6s %6s %9s %9s %7s\n", "name", "shots", "hits", "friendly", "checksum", "aborts")
	for _, n := range g.names {
		s := g.devices[n].Stats()
		fmt.Fprintf(out, "%-12s %6d %6d %9d %9d %7d\n",
			n, s.Shots, s.Hits, s.FriendlyHits, s.ChecksumFailures, s.Decoder.Aborts)
	}
	fmt.Fprintf(out, "simulated time: %v\n", g.arena.Clock.Now()-time.Second)
}

