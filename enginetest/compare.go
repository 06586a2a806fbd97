// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package enginetest provides utility functions for testing bitbalance
// engines against each other.
package enginetest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/bitbalance"
)

// maxRunSteps bounds Run so a broken engine cannot hang a test.
const maxRunSteps = 1 << 16

// Run starts a computation of v on e and steps the engine until done, then
// returns the result. It returns the number of steps taken alongside the
// result; steps is negative if the engine never completed.
//
// Run assumes done drops on the restarting step, which holds for every
// variant except the one-process model; drive that one explicitly.
func Run(e bitbalance.Engine, v uint64) (result int64, steps int) {
	e.Step(bitbalance.Input{Start: true, Value: v})
	for n := 1; n <= maxRunSteps; n++ {
		if e.Done() {
			return e.Result(), n
		}
		e.Step(bitbalance.Input{})
	}
	return 0, -1
}

// Compare drives both engines with an identical start/value stimulus script
// and fails the test on the first step where their result/done outputs
// diverge. Both engines must share the same width and latency profile.
func Compare(t *testing.T, width int, a, b bitbalance.Engine) {
	t.Helper()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	step := func(n int, in bitbalance.Input) {
		t.Helper()
		a.Step(in)
		b.Step(in)
		if a.Done() != b.Done() {
			t.Fatalf("step %d (start=%v value=%#x): done mismatch: %v != %v",
				n, in.Start, in.Value, a.Done(), b.Done())
		}
		if a.Done() && a.Result() != b.Result() {
			t.Fatalf("step %d (start=%v value=%#x): result mismatch: %d != %d",
				n, in.Start, in.Value, a.Result(), b.Result())
		}
	}

	n := 0
	for run := 0; run < 32; run++ {
		v := rng.Uint64() & (1<<uint(width) - 1)
		// random idle gap before the run; the first iteration also checks
		// that both engines idle quietly from reset.
		for gap := rng.Intn(4); gap >= 0; gap-- {
			step(n, bitbalance.Input{})
			n++
		}
		step(n, bitbalance.Input{Start: true, Value: v})
		n++
		// run to completion plus a few trailing steps; start requests during
		// the run must be ignored by both engines alike.
		for i := 0; i < 2*width+4; i++ {
			in := bitbalance.Input{}
			if i == width/2 {
				in = bitbalance.Input{Start: true, Value: ^v}
			}
			step(n, in)
			n++
		}
	}
}
