package lasertag

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sparques/irtag/nec"
	"github.com/sparques/irtag/sim"
)

type player struct {
	node *sim.Node
	dev  *Device
	hits []Hit
	logs *observer.ObservedLogs
}

func join(t *testing.T, a *sim.Arena, name string, id Identity, trigger Trigger) *player {
	t.Helper()
	n, err := a.Join(name)
	if err != nil {
		t.Fatal(err)
	}
	core, logs := observer.New(zapcore.DebugLevel)
	p := &player{node: n, logs: logs}
	p.dev = New(id, nec.NewEncoder(n.Tx), n.Decoder, trigger, zap.New(core))
	p.dev.Sleep = a.Clock.Sleep
	p.dev.OnHit = func(d *Device, h Hit) {
		p.hits = append(p.hits, h)
		LogHit(d, h)
	}
	return p
}

func TestFireHitsEveryoneElse(t *testing.T) {
	a := sim.NewArena()
	alice := join(t, a, "alice", Identity{Player: 0x1234, Team: 0x99}, nil)
	bob := join(t, a, "bob", Identity{Player: 0x0002, Team: 0x01}, nil)
	carol := join(t, a, "carol", Identity{Player: 0x0003, Team: 0x99}, nil)

	f := alice.dev.Fire()
	if f != 0x66991234 {
		t.Fatalf("Fire() sent %v, want 0x66991234", f)
	}

	for _, p := range []*player{alice, bob, carol} {
		p.dev.Poll()
	}

	if len(alice.hits) != 0 {
		t.Errorf("alice hit herself: %v", alice.hits)
	}
	if len(bob.hits) != 1 || bob.hits[0] != (Hit{Shooter: 0x1234, Team: 0x99, Friendly: false}) {
		t.Errorf("bob hits = %+v", bob.hits)
	}
	if len(carol.hits) != 1 || !carol.hits[0].Friendly {
		t.Errorf("carol hits = %+v, want one friendly hit", carol.hits)
	}

	if alice.logs.FilterMessage("ir signal sent").Len() != 1 {
		t.Error("shot not logged")
	}
	if bob.logs.FilterMessage("enemy hit").Len() != 1 {
		t.Error("enemy hit not logged for bob")
	}
	if carol.logs.FilterMessage("friendly fire, no damage").Len() != 1 {
		t.Error("friendly fire not logged for carol")
	}

	if s := bob.dev.Stats(); s.Hits != 1 || s.FriendlyHits != 0 || s.Decoder.Frames != 1 {
		t.Errorf("bob stats = %+v", s)
	}
	if s := carol.dev.Stats(); s.Hits != 1 || s.FriendlyHits != 1 {
		t.Errorf("carol stats = %+v", s)
	}
	if s := alice.dev.Stats(); s.Shots != 1 {
		t.Errorf("alice stats = %+v", s)
	}
}

func TestChecksumFailureIsNotAHit(t *testing.T) {
	a := sim.NewArena()
	alice := join(t, a, "alice", Identity{Player: 0x1234, Team: 0x99}, nil)
	bob := join(t, a, "bob", Identity{Player: 0x0002, Team: 0x01}, nil)

	// a frame whose inverted command is off by one
	alice.node.Tx.SendFrame(nec.Frame(0x67991234))

	if !bob.dev.Poll() {
		t.Fatal("Poll() found no frame")
	}
	if len(bob.hits) != 0 {
		t.Fatalf("corrupt frame produced hits: %v", bob.hits)
	}
	if s := bob.dev.Stats(); s.ChecksumFailures != 1 {
		t.Errorf("ChecksumFailures = %d, want 1", s.ChecksumFailures)
	}
	warns := bob.logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 || warns[0].Message != "invalid nec signal" {
		t.Errorf("warn logs = %v", warns)
	}
}

func TestStepFiresAndDebounces(t *testing.T) {
	a := sim.NewArena()
	pressed := true
	alice := join(t, a, "alice", Identity{Player: 1, Team: 1}, TriggerFunc(func() bool { return pressed }))
	bob := join(t, a, "bob", Identity{Player: 2, Team: 2}, nil)

	var sleeps []time.Duration
	alice.dev.Sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
		a.Clock.Sleep(d)
	}

	alice.dev.Step()
	pressed = false
	alice.dev.Step()
	bob.dev.Step()

	if s := alice.dev.Stats(); s.Shots != 1 {
		t.Errorf("Shots = %d, want 1", s.Shots)
	}
	if len(sleeps) != 1 || sleeps[0] != DefaultDebounce {
		t.Errorf("sleeps = %v, want [%v]", sleeps, DefaultDebounce)
	}
	if len(bob.hits) != 1 {
		t.Errorf("bob hits = %v, want 1", bob.hits)
	}
}

func TestRepeatPolicy(t *testing.T) {
	a := sim.NewArena()
	alice := join(t, a, "alice", Identity{Player: 1, Team: 1}, nil)
	bob := join(t, a, "bob", Identity{Player: 2, Team: 2}, nil)
	alice.dev.Repeat = RepeatPolicy{Count: 3, Gap: 40 * time.Millisecond}

	start := a.Clock.Now()
	f := alice.dev.Fire()
	elapsed := a.Clock.Now() - start

	want := f.Duration() + 3*(40*time.Millisecond+nec.LeadingPulse+nec.RepeatSpace+nec.Pulse)
	if elapsed != want {
		t.Errorf("Fire took %v, want %v", elapsed, want)
	}

	bob.dev.Poll()
	if len(bob.hits) != 1 {
		t.Fatalf("bob hits = %d, want 1", len(bob.hits))
	}
	if s := bob.dev.Stats(); s.Decoder.Repeats != 3 {
		t.Errorf("repeats seen = %d, want 3", s.Decoder.Repeats)
	}
}

func TestRepeatPolicyStandardPeriod(t *testing.T) {
	a := sim.NewArena()
	alice := join(t, a, "alice", Identity{Player: 1, Team: 1}, nil)
	alice.dev.Repeat = RepeatPolicy{Count: 2}

	start := a.Clock.Now()
	alice.dev.Fire()

	// frame and first repeat each fill one period; the last repeat ends the burst
	want := 2*nec.RepeatPeriod + nec.RepeatCode{}.Duration()
	if got := a.Clock.Now() - start; got != want {
		t.Errorf("Fire took %v, want %v", got, want)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a := sim.NewArena()
	ctx, cancel := context.WithCancel(context.Background())

	steps := 0
	trigger := TriggerFunc(func() bool {
		steps++
		if steps == 5 {
			cancel()
		}
		return false
	})
	p := join(t, a, "alice", Identity{Player: 1, Team: 1}, trigger)

	err := p.dev.Run(ctx, time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if steps != 5 {
		t.Errorf("trigger checked %d times, want 5", steps)
	}
}

func TestNewDefaults(t *testing.T) {
	dec := nec.NewDecoder()
	d := New(Identity{Player: 7, Team: 3}, nil, dec, nil, nil)
	if d.Debounce != DefaultDebounce || d.Repeat.Count != 0 || d.Logger() == nil {
		t.Errorf("unexpected defaults: %+v", d)
	}
	// receive-only device never fires
	d.Step()
	if d.Stats().Shots != 0 {
		t.Error("receive-only device fired")
	}
	if got := (Identity{Player: 0x1234, Team: 0x99}).String(); got != "player 0x1234 team 0x99" {
		t.Errorf("Identity.String() = %q", got)
	}
}
