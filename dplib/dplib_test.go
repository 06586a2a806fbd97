// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package dplib_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/bitbalance/dplib"
	"github.com/db47h/bitbalance/wire"
)

const settle = 4

func TestRegisterN(t *testing.T) {
	var (
		in          int64
		load, reset bool
		out         int64
	)
	c, err := wire.NewCircuit(settle,
		dplib.InputN(8, func() int64 { return in })(wire.W{"out": "d"}),
		dplib.Input(func() bool { return load })(wire.W{"out": "ld"}),
		dplib.Input(func() bool { return reset })(wire.W{"out": "rst"}),
		dplib.RegisterN(8)(wire.W{"in": "d", "load": "ld", "reset": "rst", "out": "q"}),
		dplib.OutputN(8, func(v int64) { out = v })(wire.W{"in": "q"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	clock := func() {
		c.Settle()
		c.Edge()
		c.Settle()
	}

	// no load: the register holds its reset value
	in = 0xab
	clock()
	if out != 0 {
		t.Fatalf("expected 0 without load, got %#x", out)
	}
	// load
	load = true
	clock()
	if out != 0xab {
		t.Fatalf("expected 0xab after load, got %#x", out)
	}
	// hold
	load = false
	in = 0x55
	clock()
	if out != 0xab {
		t.Fatalf("expected 0xab held, got %#x", out)
	}
	// reset overrides load
	load, reset = true, true
	clock()
	if out != 0 {
		t.Fatalf("expected 0 after reset, got %#x", out)
	}
}

func TestMuxN(t *testing.T) {
	var (
		a, b int64
		sel  bool
		out  int64
	)
	c, err := wire.NewCircuit(settle,
		dplib.InputN(4, func() int64 { return a })(wire.W{"out": "av"}),
		dplib.InputN(4, func() int64 { return b })(wire.W{"out": "bv"}),
		dplib.Input(func() bool { return sel })(wire.W{"out": "s"}),
		dplib.MuxN(4)(wire.W{"a": "av", "b": "bv", "sel": "s", "out": "m"}),
		dplib.OutputN(4, func(v int64) { out = v })(wire.W{"in": "m"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	a, b = 0b1010, 0b0101
	c.Settle()
	if out != 0b1010 {
		t.Fatalf("sel=0: got %#b, expected a", out)
	}
	sel = true
	c.Settle()
	if out != 0b0101 {
		t.Fatalf("sel=1: got %#b, expected b", out)
	}
}

func TestAdderN(t *testing.T) {
	var (
		a, b  int64
		out   int64
		carry bool
	)
	c, err := wire.NewCircuit(settle,
		dplib.InputN(4, func() int64 { return a })(wire.W{"out": "av"}),
		dplib.InputN(4, func() int64 { return b })(wire.W{"out": "bv"}),
		dplib.AdderN(4)(wire.W{"a": "av", "b": "bv", "out": "sum", "c": "cout"}),
		dplib.OutputN(4, func(v int64) { out = v })(wire.W{"in": "sum"}),
		dplib.Output(func(v bool) { carry = v })(wire.W{"in": "cout"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 100; i++ {
		a, b = rng.Int63n(16), rng.Int63n(16)
		c.Settle()
		if want := (a + b) & 15; out != want {
			t.Fatalf("%d+%d: got %d, expected %d", a, b, out, want)
		}
		if want := a+b > 15; carry != want {
			t.Fatalf("%d+%d: got carry %v", a, b, carry)
		}
	}
}

func TestShiftRightN(t *testing.T) {
	var in, out int64
	c, err := wire.NewCircuit(settle,
		dplib.InputN(8, func() int64 { return in })(wire.W{"out": "v"}),
		dplib.ShiftRightN(8, 1)(wire.W{"in": "v", "out": "sh"}),
		dplib.OutputN(8, func(v int64) { out = v })(wire.W{"in": "sh"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []int64{0, 1, 0x80, 0xff, 0xaa} {
		in = v
		c.Settle()
		if out != v>>1 {
			t.Fatalf("%#x: got %#x, expected %#x", v, out, v>>1)
		}
	}
}

func TestEqualN(t *testing.T) {
	var (
		a, b int64
		eq   bool
	)
	c, err := wire.NewCircuit(settle,
		dplib.InputN(4, func() int64 { return a })(wire.W{"out": "av"}),
		dplib.InputN(4, func() int64 { return b })(wire.W{"out": "bv"}),
		dplib.EqualN(4)(wire.W{"a": "av", "b": "bv", "out": "e"}),
		dplib.Output(func(v bool) { eq = v })(wire.W{"in": "e"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	for a = 0; a < 16; a++ {
		for b = 0; b < 16; b++ {
			c.Settle()
			if eq != (a == b) {
				t.Fatalf("a=%d b=%d: got %v", a, b, eq)
			}
		}
	}
}

func TestInt64RoundTrip(t *testing.T) {
	var in, out int64
	c, err := wire.NewCircuit(settle,
		dplib.InputN(16, func() int64 { return in })(wire.W{"out": "v"}),
		dplib.OutputN(16, func(v int64) { out = v })(wire.W{"in": "v"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []int64{0, 1, 0x8000, 0xffff, 0x1234} {
		in = v
		c.Settle()
		if out != v {
			t.Fatalf("%#x: got %#x", v, out)
		}
	}
}
