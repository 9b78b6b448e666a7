//go:build tinygo

// Firmware for one laser tag device: a TSAL6200 IR LED as the gun, a
// TSOP38438 demodulating receiver as the vest, and a trigger button.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/sparques/irtag"
	"github.com/sparques/irtag/internal/config"
	"github.com/sparques/irtag/internal/logging"
	"github.com/sparques/irtag/lasertag"
	"github.com/sparques/irtag/nec"
)

const (
	irLedPin      = machine.GPIO4
	irReceiverPin = machine.GPIO5
	triggerPin    = machine.GPIO15
)

func main() {
	cfg := config.Default()
	me := cfg.Players[0]

	log, err := logging.New(machine.Serial, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		println("logger:", err.Error())
		return
	}

	tx := irtag.NewTxDevice(irtag.NewPWMEmitter(irLedPin))
	tx.SetDutyCycle(cfg.Carrier.DutyCycle)

	dec := nec.NewDecoder()
	rx := irtag.NewRxDevice(irReceiverPin, dec)
	rx.Start()

	triggerPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	trigger := lasertag.TriggerFunc(func() bool {
		// pulled up; pressing shorts to ground
		return !triggerPin.Get()
	})

	dev := lasertag.New(
		lasertag.Identity{Player: me.Player, Team: me.Team},
		nec.NewEncoder(tx),
		dec,
		trigger,
		log,
	)
	dev.Debounce = cfg.Debounce
	dev.Repeat = lasertag.RepeatPolicy{Count: cfg.Repeat.Count, Gap: cfg.Repeat.Gap}

	_ = dev.Run(context.Background(), time.Millisecond)
}
