package sim

import (
	"fmt"
	"time"

	"github.com/sparques/irtag"
	"github.com/sparques/irtag/nec"
)

// Node is one simulated device: an emitter whose light reaches every other
// node, and a decoder listening to everyone else.
type Node struct {
	Name    string
	Decoder *nec.Decoder
	Tx      *irtag.TxDevice
	Emitter *Emitter
}

// Arena is a shared line-of-sight IR medium. Every node hears every other
// node and never itself.
type Arena struct {
	Clock *Clock

	nodes  []*Node
	jitter int
	seed   int64
}

func NewArena() *Arena {
	// start away from zero so the first edge never looks like a valid space
	return &Arena{Clock: NewClock(time.Second)}
}

// SetJitter applies timing jitter to nodes joined from now on. Each node
// gets its own sequence derived from seed.
func (a *Arena) SetJitter(us int, seed int64) {
	a.jitter = us
	a.seed = seed
}

// Join adds a node. Names must be unique.
func (a *Arena) Join(name string) (*Node, error) {
	if _, ok := a.Node(name); ok {
		return nil, fmt.Errorf("sim: node %q already joined", name)
	}

	em := NewEmitter(a.Clock, nil)
	if a.jitter > 0 {
		em.SetJitter(a.jitter, a.seed+int64(len(a.nodes)))
	}
	tx := irtag.NewTxDevice(em)
	tx.Delay = a.Clock.Sleep

	n := &Node{
		Name:    name,
		Decoder: nec.NewDecoder(),
		Tx:      tx,
		Emitter: em,
	}
	a.nodes = append(a.nodes, n)
	a.rewire()
	return n, nil
}

func (a *Arena) Node(name string) (*Node, bool) {
	for _, n := range a.nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

func (a *Arena) Nodes() []*Node {
	return a.nodes
}

// Glitch delivers a lone burst of width to every node, as a stray reflection
// or a fluorescent light might.
func (a *Arena) Glitch(width time.Duration) {
	all := a.listeners(nil)
	all.HandleEdge(irtag.Falling, a.Clock.Micros())
	a.Clock.Advance(width)
	all.HandleEdge(irtag.Rising, a.Clock.Micros())
}

// Idle lets the medium stay dark for d.
func (a *Arena) Idle(d time.Duration) {
	a.Clock.Advance(d)
}

func (a *Arena) rewire() {
	for _, n := range a.nodes {
		n.Emitter.target = a.listeners(n)
	}
}

func (a *Arena) listeners(except *Node) irtag.EdgeHandler {
	var hs []irtag.EdgeHandler
	for _, n := range a.nodes {
		if n == except {
			continue
		}
		hs = append(hs, n.Decoder)
	}
	return irtag.MultiEdgeHandler(hs...)
}
