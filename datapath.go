// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance

// A Datapath holds all session state of one computation and applies one
// step's worth of control directives to it. It has no knowledge of where in
// the algorithm the computation is; that knowledge lives in the Controller.
//
// Status must be read before Apply when both are needed for the same step:
// it reports the register state as of the previous clock edge.
type Datapath interface {
	Apply(d Directives, input uint64)
	Status() Status
	// Result returns the latched result register, sign-extended.
	Result() int64
	Reset()
}

// behavioralDatapath computes the next-state expressions directly, with the
// register resets folded into the next-value muxes.
type behavioralDatapath struct {
	cfg   Config
	shift uint64
	diff  int64
	count uint
	res   int64
}

func newBehavioralDatapath(cfg Config) *behavioralDatapath {
	return &behavioralDatapath{cfg: cfg}
}

func (p *behavioralDatapath) Reset() {
	*p = behavioralDatapath{cfg: p.cfg}
}

func (p *behavioralDatapath) Status() Status {
	return Status{CountDone: p.count == uint(p.cfg.Width-1)}
}

func (p *behavioralDatapath) Result() int64 { return p.res }

func (p *behavioralDatapath) Apply(d Directives, input uint64) {
	// All transition values are computed from pre-edge state before any
	// register commits; reading a sibling's next value here would be the
	// same-step feedback hazard the two-frame netlist rules out by
	// construction.
	nextShift := p.shift >> 1
	if d.LoadData {
		nextShift = input & p.cfg.mask()
	}
	contrib := int64(-1)
	if p.shift&1 != 0 {
		contrib = 1
	}
	nextDiff := p.diff + contrib
	if d.DiffReset {
		nextDiff = 0
	}
	nextCount := (p.count + 1) & p.cfg.countMask()
	if d.CountReset {
		nextCount = 0
	}

	if d.ResultEnable {
		p.res = nextDiff
	}
	if d.LoadData || d.ShiftEnable {
		p.shift = nextShift
	}
	if d.DiffReset || d.DiffEnable {
		p.diff = nextDiff
	}
	if d.CountReset || d.CountEnable {
		p.count = nextCount
	}
}

// resetDatapath replaces the reset muxes with a dedicated synchronous reset
// per register. The reset directives are sampled on the clock edge like any
// other register input, which is what makes this variant race-free and step
// for step indistinguishable from the mux-based one: an asynchronous reset
// driven straight from combinational control would race the control
// computation itself.
type resetDatapath struct {
	cfg   Config
	shift uint64
	diff  int64
	count uint
	res   int64
}

func newResetDatapath(cfg Config) *resetDatapath {
	return &resetDatapath{cfg: cfg}
}

func (p *resetDatapath) Reset() {
	*p = resetDatapath{cfg: p.cfg}
}

func (p *resetDatapath) Status() Status {
	return Status{CountDone: p.count == uint(p.cfg.Width-1)}
}

func (p *resetDatapath) Result() int64 { return p.res }

func (p *resetDatapath) Apply(d Directives, input uint64) {
	nextShift := p.shift >> 1
	if d.LoadData {
		nextShift = input & p.cfg.mask()
	}
	contrib := int64(-1)
	if p.shift&1 != 0 {
		contrib = 1
	}
	nextDiff := p.diff + contrib
	nextCount := (p.count + 1) & p.cfg.countMask()

	if d.ResultEnable {
		p.res = nextDiff
	}
	if d.LoadData || d.ShiftEnable {
		p.shift = nextShift
	}
	if d.DiffEnable {
		p.diff = nextDiff
	}
	if d.CountEnable {
		p.count = nextCount
	}
	// reset overrides enable
	if d.DiffReset {
		p.diff = 0
	}
	if d.CountReset {
		p.count = 0
	}
}
