// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package dplib provides a library of primitive datapath parts for wire
// circuits: registers, muxes, adders, shifters and comparators, plus
// function-backed input and output probes. Parts are pure operators with no
// awareness of the algorithm they serve.
package dplib

import (
	"strconv"

	"github.com/db47h/bitbalance/wire"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pOut  = "out"
	pLoad = "load"
	pRst  = "reset"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = wire.BusPinName(n, j)
		}
	}
	return b
}

// RegisterN returns an N-bits register with load enable and synchronous
// reset.
//
//	Inputs: in[bits], load, reset
//	Outputs: out[bits]
//	Function: on the clock edge: if reset { out = 0 } else if load { out = in }
//
// Reset overrides load. Both are sampled on the edge only.
func RegisterN(bits int) wire.NewPartFn {
	return (&wire.PartSpec{
		Name:    "Register" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pIn), pLoad, pRst),
		Outputs: bus(bits, pOut),
		Mount: func(s *wire.Socket) []wire.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			load, rst := s.Pin(pLoad), s.Pin(pRst)
			var cur int64
			return []wire.Component{
				func(c *wire.Circuit) {
					if c.AtEdge() {
						switch {
						case c.Get(rst):
							cur = 0
						case c.Get(load):
							cur = Int64(c, in)
						}
					}
					SetInt64(c, out, cur)
				}}
		}}).Wire
}

// MuxN returns an N-bits 2-way multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: if sel == 0 { out = a } else { out = b }
func MuxN(bits int) wire.NewPartFn {
	return (&wire.PartSpec{
		Name:    "Mux" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *wire.Socket) []wire.Component {
			a, b, sel := s.Bus(pA, bits), s.Bus(pB, bits), s.Pin(pSel)
			out := s.Bus(pOut, bits)
			return []wire.Component{
				func(c *wire.Circuit) {
					src := a
					if c.Get(sel) {
						src = b
					}
					for i, o := range out {
						c.Set(o, c.Get(src[i]))
					}
				}}
		}}).Wire
}

// AdderN returns an N-bits ripple-carry adder. The sum wraps at bits width;
// the dropped carry is exposed on c.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = (a + b) mod 2^bits, c = carry out
func AdderN(bits int) wire.NewPartFn {
	return (&wire.PartSpec{
		Name:    "Adder" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: append(bus(bits, pOut), "c"),
		Mount: func(s *wire.Socket) []wire.Component {
			a, b := s.Bus(pA, bits), s.Bus(pB, bits)
			out, cout := s.Bus(pOut, bits), s.Pin("c")
			return []wire.Component{
				func(c *wire.Circuit) {
					cc := false
					for i, o := range out {
						va, vb := c.Get(a[i]), c.Get(b[i])
						s0 := va != vb
						c.Set(o, s0 != cc)
						cc = va && vb || s0 && cc
					}
					c.Set(cout, cc)
				}}
		}}).Wire
}

// ShiftRightN returns an N-bits right shifter by a fixed shift amount,
// zero-filling from the top.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = in >> shift
func ShiftRightN(bits, shift int) wire.NewPartFn {
	return (&wire.PartSpec{
		Name:    "ShiftRight" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *wire.Socket) []wire.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			return []wire.Component{
				func(c *wire.Circuit) {
					for i, o := range out {
						if i+shift < bits {
							c.Set(o, c.Get(in[i+shift]))
						} else {
							c.Set(o, false)
						}
					}
				}}
		}}).Wire
}

// EqualN returns an N-bits equality comparator.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out
//	Function: out = (a == b)
func EqualN(bits int) wire.NewPartFn {
	return (&wire.PartSpec{
		Name:    "Equal" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: []string{pOut},
		Mount: func(s *wire.Socket) []wire.Component {
			a, b, out := s.Bus(pA, bits), s.Bus(pB, bits), s.Pin(pOut)
			return []wire.Component{
				func(c *wire.Circuit) {
					eq := true
					for i := range a {
						if c.Get(a[i]) != c.Get(b[i]) {
							eq = false
							break
						}
					}
					c.Set(out, eq)
				}}
		}}).Wire
}
