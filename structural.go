// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/db47h/bitbalance/dplib"
	"github.com/db47h/bitbalance/wire"
)

// settleDepth covers the deepest combinational chain in the netlist
// (shift register -> contribution mux -> adder -> reset mux), with margin.
const settleDepth = 6

// structEngine drives a bit-level netlist with the same controller used by
// the behavioral datapaths. The datapath is the mux-reset realization:
// discrete register, mux, adder, shifter and comparator parts wired
// together, with a global reset line on every register.
//
// Each engine step maps the controller directives onto the physical register
// enables, lets the combinational logic settle, fires the clock edge and
// settles again so the status and result probes reflect the post-edge state.
type structEngine struct {
	cfg  Config
	ctrl Controller
	c    *wire.Circuit

	// stimulus, read by input probes
	value   int64
	grst    bool
	dataSel bool
	shiftLd bool
	diffSel bool
	diffLd  bool
	cntSel  bool
	cntLd   bool
	resLd   bool

	// probe outputs
	res       int64
	countDone bool
}

func newStructural(cfg Config) (*structEngine, error) {
	e := &structEngine{cfg: cfg, ctrl: newController()}
	w, rw, cw := cfg.Width, cfg.ResultWidth(), cfg.countWidth()

	// constant operand wiring: unconnected input bits are grounded, so only
	// the set bits need tying to the true wire.
	// contribution mux: a = -1 (all ones), b = +1, sel = current data bit
	contribMux := make(wire.W, rw+3)
	for i := 0; i < rw; i++ {
		contribMux[wire.BusPinName("a", i)] = wire.True
	}
	contribMux[wire.BusPinName("b", 0)] = wire.True
	contribMux["sel"] = wire.BusPinName("shiftOut", 0)
	contribMux["out"] = "contrib"
	lastCount := wire.W{"a": "cntOut", "out": "cntDone"}
	for i := 0; i < cw; i++ {
		if uint(cfg.Width-1)&(1<<uint(i)) != 0 {
			lastCount[wire.BusPinName("b", i)] = wire.True
		}
	}

	c, err := wire.NewCircuit(settleDepth,
		// stimulus
		dplib.InputN(w, func() int64 { return e.value })(wire.W{"out": "val"}),
		dplib.Input(func() bool { return e.grst })(wire.W{"out": "grst"}),
		dplib.Input(func() bool { return e.dataSel })(wire.W{"out": "dataSel"}),
		dplib.Input(func() bool { return e.shiftLd })(wire.W{"out": "shiftLd"}),
		dplib.Input(func() bool { return e.diffSel })(wire.W{"out": "diffSel"}),
		dplib.Input(func() bool { return e.diffLd })(wire.W{"out": "diffLd"}),
		dplib.Input(func() bool { return e.cntSel })(wire.W{"out": "cntSel"}),
		dplib.Input(func() bool { return e.cntLd })(wire.W{"out": "cntLd"}),
		dplib.Input(func() bool { return e.resLd })(wire.W{"out": "resLd"}),

		// data path: shift register with input/shift mux
		dplib.ShiftRightN(w, 1)(wire.W{"in": "shiftOut", "out": "shifted"}),
		dplib.MuxN(w)(wire.W{"a": "shifted", "b": "val", "sel": "dataSel", "out": "shiftNext"}),
		dplib.RegisterN(w)(wire.W{"in": "shiftNext", "load": "shiftLd", "reset": "grst", "out": "shiftOut"}),

		// difference path: +1/-1 contribution, accumulate, reset mux
		dplib.MuxN(rw)(contribMux),
		dplib.AdderN(rw)(wire.W{"a": "diffOut", "b": "contrib", "out": "diffSum"}),
		dplib.MuxN(rw)(wire.W{"a": "diffSum", "sel": "diffSel", "out": "diffNext"}),
		dplib.RegisterN(rw)(wire.W{"in": "diffNext", "load": "diffLd", "reset": "grst", "out": "diffOut"}),

		// count path: increment, reset mux, last-step comparator
		dplib.AdderN(cw)(wire.W{"a": "cntOut", wire.BusPinName("b", 0): wire.True, "out": "cntSum"}),
		dplib.MuxN(cw)(wire.W{"a": "cntSum", "sel": "cntSel", "out": "cntNext"}),
		dplib.RegisterN(cw)(wire.W{"in": "cntNext", "load": "cntLd", "reset": "grst", "out": "cntOut"}),
		dplib.EqualN(cw)(lastCount),

		// result register and probes
		dplib.RegisterN(rw)(wire.W{"in": "diffNext", "load": "resLd", "reset": "grst", "out": "resOut"}),
		dplib.OutputN(rw, func(v int64) {
			if v&(1<<uint(rw-1)) != 0 {
				v -= 1 << uint(rw)
			}
			e.res = v
		})(wire.W{"in": "resOut"}),
		dplib.Output(func(b bool) { e.countDone = b })(wire.W{"in": "cntDone"}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "building netlist")
	}
	e.c = c
	// prime the probes so the first step sees post-reset status
	e.c.Settle()
	return e, nil
}

func (e *structEngine) Reset() {
	e.ctrl.Reset()
	e.value = 0
	e.dataSel, e.shiftLd, e.diffSel, e.diffLd = false, false, false, false
	e.cntSel, e.cntLd, e.resLd = false, false, false
	e.grst = true
	e.c.Settle()
	e.c.Edge()
	e.grst = false
	e.c.Settle()
}

func (e *structEngine) Step(in Input) {
	d := e.ctrl.Step(Status{CountDone: e.countDone}, in.Start)
	e.value = int64(in.Value & e.cfg.mask())
	e.dataSel = d.LoadData
	e.shiftLd = d.LoadData || d.ShiftEnable
	e.diffSel = d.DiffReset
	e.diffLd = d.DiffReset || d.DiffEnable
	e.cntSel = d.CountReset
	e.cntLd = d.CountReset || d.CountEnable
	e.resLd = d.ResultEnable
	e.c.Settle()
	e.c.Edge()
	e.c.Settle()
	log.Debugf("netlist: %d components, %d sub-steps, countDone=%v result=%d",
		e.c.Size(), e.c.Steps(), e.countDone, e.res)
}

func (e *structEngine) Result() int64 { return e.res }

func (e *structEngine) Done() bool { return e.ctrl.Done() }
