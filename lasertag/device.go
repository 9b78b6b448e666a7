// Package lasertag ties the NEC channel to a player: it fires the player's
// identity when the trigger is pulled and turns incoming frames into hits.
//
// Scoring is left to the HitHandler.
package lasertag

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sparques/irtag/nec"
)

// Identity is what a device broadcasts when it fires. Player travels as the
// NEC address and Team as the NEC command.
type Identity struct {
	Player uint16
	Team   uint8
}

func (id Identity) String() string {
	return fmt.Sprintf("player 0x%04X team 0x%02X", id.Player, id.Team)
}

// Hit is a checksum-valid frame received from another device.
type Hit struct {
	Shooter  uint16
	Team     uint8
	Friendly bool // shooter is on our team
}

// Trigger reports whether the fire button is held.
type Trigger interface {
	Pressed() bool
}

// TriggerFunc adapts a plain function to Trigger.
type TriggerFunc func() bool

func (f TriggerFunc) Pressed() bool { return f() }

// RepeatPolicy sends NEC repeat codes after each shot. Count 0 sends none.
// Gap is the dark time before each repeat code; 0 keeps the standard
// nec.RepeatPeriod start-to-start spacing instead.
type RepeatPolicy struct {
	Count int
	Gap   time.Duration
}

// HitHandler is called from the polling loop for every valid hit.
type HitHandler func(d *Device, hit Hit)

// Stats counts device activity. Only the polling loop updates it.
type Stats struct {
	Shots            int
	Hits             int
	FriendlyHits     int
	ChecksumFailures int
	Decoder          nec.DecoderStats
}

// Device is one player's gun and vest.
type Device struct {
	ID       Identity
	Debounce time.Duration
	Repeat   RepeatPolicy
	OnHit    HitHandler

	// Sleep waits out debounce and repeat gaps. Defaults to time.Sleep.
	Sleep func(time.Duration)

	enc     *nec.Encoder
	dec     *nec.Decoder
	disp    *nec.Dispatcher
	trigger Trigger
	log     *zap.Logger
	stats   Stats
}

// DefaultDebounce is the pause after each shot.
const DefaultDebounce = 100 * time.Millisecond

// New assembles a device. trigger may be nil for a device that only
// receives; log may be nil to discard logs.
func New(id Identity, enc *nec.Encoder, dec *nec.Decoder, trigger Trigger, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Device{
		ID:       id,
		Debounce: DefaultDebounce,
		OnHit:    LogHit,
		Sleep:    time.Sleep,
		enc:      enc,
		dec:      dec,
		trigger:  trigger,
		log:      log.With(zap.String("player", fmt.Sprintf("0x%04X", id.Player))),
	}
	d.disp = nec.NewDispatcher(dec, d.handleFrame)
	d.disp.OnChecksumFailure = d.handleChecksumFailure
	return d
}

func (d *Device) Logger() *zap.Logger {
	return d.log
}

// Fire broadcasts this device's identity followed by any configured repeat
// codes. It blocks for the whole transmission.
func (d *Device) Fire() nec.Frame {
	f := d.enc.Transmit(d.ID.Player, d.ID.Team)
	d.stats.Shots++
	d.log.Info("ir signal sent", zap.Stringer("frame", f))

	last := f.Duration()
	for i := 0; i < d.Repeat.Count; i++ {
		wait := d.Repeat.Gap
		if wait <= 0 {
			wait = nec.RepeatPeriod - last
		}
		d.Sleep(wait)
		d.enc.TransmitRepeat()
		last = nec.RepeatCode{}.Duration()
	}
	if d.Repeat.Count > 0 {
		d.log.Debug("repeat codes sent", zap.Int("count", d.Repeat.Count))
	}
	return f
}

// Poll dispatches a received frame if one is waiting and reports whether it did.
func (d *Device) Poll() bool {
	return d.disp.PollAndDispatch()
}

// Step is one pass of the main loop: handle any received frame, then fire
// and debounce if the trigger is held.
func (d *Device) Step() {
	d.Poll()

	if d.trigger == nil || !d.trigger.Pressed() {
		return
	}
	d.Fire()
	d.Sleep(d.Debounce)
}

// Run calls Step until ctx is done, pausing interval between passes.
func (d *Device) Run(ctx context.Context, interval time.Duration) error {
	d.log.Info("laser tag device ready",
		zap.String("team", fmt.Sprintf("0x%02X", d.ID.Team)))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		d.Step()
		if interval > 0 {
			d.Sleep(interval)
		}
	}
}

func (d *Device) Stats() Stats {
	s := d.stats
	s.Decoder = d.dec.Stats()
	return s
}

func (d *Device) handleFrame(address uint16, command uint8) {
	hit := Hit{
		Shooter:  address,
		Team:     command,
		Friendly: command == d.ID.Team,
	}
	d.stats.Hits++
	if hit.Friendly {
		d.stats.FriendlyHits++
	}
	d.log.Info("valid nec signal received",
		zap.String("shooter", fmt.Sprintf("0x%04X", address)),
		zap.String("team", fmt.Sprintf("0x%02X", command)))

	if d.OnHit != nil {
		d.OnHit(d, hit)
	}
}

func (d *Device) handleChecksumFailure(command, inverted, expected uint8) {
	d.stats.ChecksumFailures++
	d.log.Warn("invalid nec signal",
		zap.Error(&nec.ChecksumError{Command: command, Inverted: inverted, Expected: expected}))
}

// LogHit is the default HitHandler. It only reports the hit.
func LogHit(d *Device, hit Hit) {
	if hit.Friendly {
		d.log.Info("friendly fire, no damage", zap.String("shooter", fmt.Sprintf("0x%04X", hit.Shooter)))
		return
	}
	d.log.Info("enemy hit", zap.String("shooter", fmt.Sprintf("0x%04X", hit.Shooter)))
}
