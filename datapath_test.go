// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// drive a datapath through one full run the way the three-state controller
// would, collecting the per-step status.
func runDatapath(p Datapath, v uint64) int64 {
	p.Apply(Directives{LoadData: true, DiffReset: true, CountReset: true}, v)
	for {
		done := p.Status().CountDone
		d := Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true, ResultEnable: done}
		p.Apply(d, 0)
		if done {
			return p.Result()
		}
	}
}

func TestDatapathRun(t *testing.T) {
	cfg := Config{Width: 4}
	for _, p := range []Datapath{newBehavioralDatapath(cfg), newResetDatapath(cfg)} {
		require.Equal(t, int64(2), runDatapath(p, 0b1011))
		require.Equal(t, int64(-4), runDatapath(p, 0b0000))
		require.Equal(t, int64(4), runDatapath(p, 0b1111))
	}
}

// The mux-reset and dedicated-reset datapaths must be indistinguishable for
// any control sequence a controller can produce.
func TestDatapathEquivalence(t *testing.T) {
	cfg := Config{Width: 5}
	a := newBehavioralDatapath(cfg)
	b := newResetDatapath(cfg)

	script := []struct {
		d     Directives
		input uint64
	}{
		{Directives{LoadData: true, DiffReset: true, CountReset: true}, 0b10110},
		{Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0},
		{Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0},
		{Directives{}, 0}, // controller stall: state must hold
		{Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0},
		{Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0},
		{Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true, ResultEnable: true}, 0},
		{Directives{}, 0},
		// back-to-back restart
		{Directives{LoadData: true, DiffReset: true, CountReset: true}, 0b00001},
	}
	for i, s := range script {
		a.Apply(s.d, s.input)
		b.Apply(s.d, s.input)
		require.Equalf(t, a.Status(), b.Status(), "step %d", i)
		require.Equalf(t, a.Result(), b.Result(), "step %d", i)
	}
}

func TestDatapathHoldsWithoutEnables(t *testing.T) {
	cfg := Config{Width: 4}
	p := newBehavioralDatapath(cfg)
	p.Apply(Directives{LoadData: true, DiffReset: true, CountReset: true}, 0b1010)
	p.Apply(Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0)
	st, res := p.Status(), p.Result()
	for i := 0; i < 5; i++ {
		p.Apply(Directives{}, 0b1111)
		require.Equal(t, st, p.Status())
		require.Equal(t, res, p.Result())
	}
}

func TestResetDatapathResetOverridesEnable(t *testing.T) {
	cfg := Config{Width: 4}
	p := newResetDatapath(cfg)
	p.Apply(Directives{LoadData: true, DiffReset: true, CountReset: true}, 0b1111)
	p.Apply(Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0)
	p.Apply(Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0)
	require.False(t, p.Status().CountDone)
	// reset and enable asserted together: the registers must clear
	p.Apply(Directives{DiffReset: true, DiffEnable: true, CountReset: true, CountEnable: true}, 0)
	p.Apply(Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true, ResultEnable: true}, 0)
	// count restarted from 0, so count-done is still a long way off
	require.False(t, p.Status().CountDone)
}

func TestCountDone(t *testing.T) {
	for _, width := range []int{1, 2, 4, 5, 8} {
		cfg := Config{Width: width}
		p := newBehavioralDatapath(cfg)
		p.Apply(Directives{LoadData: true, DiffReset: true, CountReset: true}, 0)
		for i := 0; i < width-1; i++ {
			require.Falsef(t, p.Status().CountDone, "width=%d step %d", width, i)
			p.Apply(Directives{ShiftEnable: true, DiffEnable: true, CountEnable: true}, 0)
		}
		require.Truef(t, p.Status().CountDone, "width=%d", width)
	}
}
