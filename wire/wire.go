// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package wire implements a small synchronous netlist simulator.

A circuit is a set of named wires and a list of components. Wire states live
in two frames: components read the settled state of the previous sub-step and
write the next one, and the frames swap after every sub-step. A clock step is
a settle phase (combinational signals propagate, one component depth per
sub-step) followed by a single edge sub-step on which clocked parts commit
their state. Because no component ever reads a value written during the same
sub-step, evaluation order is irrelevant and combinational feedback cannot
lock up the update loop.
*/
package wire

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// A Component reads the current state frame of a circuit and writes into its
// next frame.
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query the socket
// for assigned pin numbers and return closures around these pin numbers.
//
// For example, an inverter can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Inputs: []string{"in"},
//		Outputs: []string{"out"},
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint). Bus pins are
// declared as individual pins named "x[0]", "x[1]", ... (see BusPinName).
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct.
	Inputs []string
	// Output pin names. Must be distinct.
	Outputs []string
	// Mount function (see MountFn).
	Mount MountFn
}

// W is a set of wires, connecting a part's I/O pins (the map key) to wires
// in its container. A key naming a whole bus ("x") is expanded bit by bit
// against a value bus of the same width ("y" becomes "x[i]": "y[i]").
type W map[string]string

// Wire wraps p with the given connections into a Part.
func (p *PartSpec) Wire(w W) Part {
	return Part{p, w}
}

// A NewPartFn is a function that takes a wire map and returns a new Part.
type NewPartFn func(w W) Part

// A Part wraps a part specification together with its connections within a
// circuit.
type Part struct {
	Spec *PartSpec
	W    W
}

// wires expands bus connections and checks pin names against the part spec.
func (p Part) wires() (map[string]string, error) {
	pins := make(map[string]bool, len(p.Spec.Inputs)+len(p.Spec.Outputs))
	for _, n := range p.Spec.Inputs {
		pins[n] = true
	}
	for _, n := range p.Spec.Outputs {
		pins[n] = true
	}
	m := make(map[string]string, len(p.W))
	for k, v := range p.W {
		if k == "" || v == "" {
			return nil, errors.Errorf("invalid pin mapping %q:%q for part %s", k, v, p.Spec.Name)
		}
		if pins[k] {
			m[k] = v
			continue
		}
		// bus name: expand to the declared width
		n := 0
		for pins[BusPinName(k, n)] {
			n++
		}
		if n == 0 {
			return nil, errors.Errorf("invalid pin name %q for part %s", k, p.Spec.Name)
		}
		for i := 0; i < n; i++ {
			m[BusPinName(k, i)] = BusPinName(v, i)
		}
	}
	return m, nil
}

// Constant wire names. Wiring a part input to True or False ties it to that
// constant level.
const (
	True  = "true"
	False = "false"
)

const (
	cstFalse = iota
	cstTrue
	cstCount
)

// Circuit is a runnable netlist simulation.
type Circuit struct {
	s0     *bitset.BitSet // wire states frame #0
	s1     *bitset.BitSet // wire states frame #1
	cs     []Component
	count  int // wire count
	settle int // sub-steps per settle phase
	tick   uint64
	edge   bool
}

// NewCircuit builds a new circuit from the given parts.
//
// settle is the number of sub-steps run by Settle; it must cover the deepest
// combinational component chain in the netlist (each component adds one
// sub-step of propagation delay).
//
// Part inputs left unconnected are tied to False. Unconnected outputs get a
// private wire.
func NewCircuit(settle int, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}
	if settle < 1 {
		settle = 1
	}
	c := &Circuit{count: cstCount, settle: settle}
	root := newSocket(c)
	for _, p := range parts {
		ws, err := p.wires()
		if err != nil {
			return nil, errors.Wrap(err, "wiring")
		}
		sub := newSocket(c)
		for in, ex := range ws {
			sub.m[in] = root.PinOrNew(ex)
		}
		for _, name := range p.Spec.Inputs {
			if _, ok := sub.m[name]; !ok {
				sub.m[name] = cstFalse
			}
		}
		for _, name := range p.Spec.Outputs {
			if _, ok := sub.m[name]; !ok {
				sub.m[name] = c.allocPin()
			}
		}
		c.cs = append(c.cs, p.Spec.Mount(sub)...)
	}
	c.s0 = bitset.New(uint(c.count))
	c.s1 = bitset.New(uint(c.count))
	c.s0.Set(cstTrue)
	c.s1.Set(cstTrue)
	return c, nil
}

// allocPin allocates a wire and returns its number.
func (c *Circuit) allocPin() int {
	n := c.count
	c.count++
	return n
}

// Get returns the state of pin n as of the previous sub-step. The value of n
// should be obtained in a MountFn by a call to one of the Socket methods.
func (c *Circuit) Get(n int) bool {
	return c.s0.Test(uint(n))
}

// Set sets the state of pin n for the next sub-step.
func (c *Circuit) Set(n int, v bool) {
	c.s1.SetTo(uint(n), v)
}

// Step runs every component once and swaps the state frames.
func (c *Circuit) Step() {
	for _, f := range c.cs {
		f(c)
	}
	c.tick++
	c.s0, c.s1 = c.s1, c.s0
}

// Settle runs sub-steps with the edge flag down until combinational signals
// have propagated through the configured component depth.
func (c *Circuit) Settle() {
	c.edge = false
	for i := 0; i < c.settle; i++ {
		c.Step()
	}
}

// Edge runs a single sub-step with the edge flag up. Clocked parts commit
// their state on this sub-step.
func (c *Circuit) Edge() {
	c.edge = true
	c.Step()
	c.edge = false
}

// AtEdge reports whether the current sub-step is the clock edge.
func (c *Circuit) AtEdge() bool {
	return c.edge
}

// Steps returns the number of sub-steps run so far.
func (c *Circuit) Steps() uint64 {
	return c.tick
}

// Size returns the component count in the circuit.
func (c *Circuit) Size() int { return len(c.cs) }
