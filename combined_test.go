// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bb "github.com/db47h/bitbalance"
)

// The one-process model registers done, so it becomes visible one step after
// the two-process reference; the result value sequence is identical.
func TestOneProcDoneLagsByOneStep(t *testing.T) {
	const width = 4
	one := newEngine(t, width, bb.OneProc)
	two := newEngine(t, width, bb.TwoProc)

	in := bb.Input{Start: true, Value: 0b1011}
	for i := 0; i <= width; i++ {
		one.Step(in)
		two.Step(in)
		in = bb.Input{}
	}
	// after width+1 steps the reference reports done, the one-process
	// model does not yet
	require.True(t, two.Done())
	require.False(t, one.Done())
	require.Equal(t, int64(2), two.Result())

	one.Step(bb.Input{})
	require.True(t, one.Done())
	require.Equal(t, int64(2), one.Result())
}

func TestOneProcResults(t *testing.T) {
	const width = 8
	e := newEngine(t, width, bb.OneProc)
	for val := uint64(0); val < 1<<width; val++ {
		e.Reset()
		e.Step(bb.Input{Start: true, Value: val})
		for i := 0; i < width+1; i++ {
			e.Step(bb.Input{})
		}
		require.Truef(t, e.Done(), "input %#b", val)
		require.Equalf(t, expected(val, width), e.Result(), "input %#b", val)
	}
}

// done must not drop on the step a restart is observed: the registered done
// of the one-process model holds through the first step of a back-to-back
// run, so consumers gating start on done never see a glitch.
func TestOneProcDoneHoldsThroughRestart(t *testing.T) {
	const width = 4
	e := newEngine(t, width, bb.OneProc)
	e.Step(bb.Input{Start: true, Value: 0b1111})
	for i := 0; i < width+1; i++ {
		e.Step(bb.Input{})
	}
	require.True(t, e.Done())

	// restart: done stays up for this step and drops on the next
	e.Step(bb.Input{Start: true, Value: 0})
	require.True(t, e.Done())
	e.Step(bb.Input{})
	require.False(t, e.Done())

	for i := 0; i < width; i++ {
		e.Step(bb.Input{})
	}
	require.True(t, e.Done())
	require.Equal(t, int64(-4), e.Result())
}
