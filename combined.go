// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance

// session is the full register state of a combined controller+datapath
// model: the controller state and the datapath registers in one struct,
// updated atomically between steps.
type session struct {
	ctrl  state
	shift uint64
	diff  int64
	count uint
	res   int64
}

// twoProcEngine is the two-process combined model: next is a pure function
// of the current session state and the external input, and Step is the
// single place where state mutates. done is combinational on the controller
// state.
type twoProcEngine struct {
	cfg Config
	s   session
}

func newTwoProc(cfg Config) *twoProcEngine {
	return &twoProcEngine{cfg: cfg}
}

func (e *twoProcEngine) Reset() { e.s = session{} }

func (e *twoProcEngine) Step(in Input) { e.s = e.next(in) }

func (e *twoProcEngine) Result() int64 { return e.s.res }

func (e *twoProcEngine) Done() bool { return e.s.ctrl == stateDone }

func (e *twoProcEngine) next(in Input) session {
	s := e.s
	switch e.s.ctrl {
	case stateIdle, stateDone:
		if in.Start {
			s.shift = in.Value & e.cfg.mask()
			s.diff = 0
			s.count = 0
			s.ctrl = stateCompute
		}
	case stateCompute:
		contrib := int64(-1)
		if e.s.shift&1 != 0 {
			contrib = 1
		}
		s.shift = e.s.shift >> 1
		s.diff = e.s.diff + contrib
		s.count = (e.s.count + 1) & e.cfg.countMask()
		if e.s.count == uint(e.cfg.Width-1) {
			s.res = s.diff
			s.ctrl = stateDone
		}
	}
	return s
}

// oneProcEngine is the one-process combined model: state transitions and
// outputs live in a single update routine and every output is registered,
// including done. As a consequence done becomes visible one step after the
// result is internally ready, and it stays high through the first step of a
// back-to-back run.
type oneProcEngine struct {
	cfg   Config
	ctrl  state
	shift uint64
	diff  int64
	count uint
	res   int64
	done  bool
}

func newOneProc(cfg Config) *oneProcEngine {
	return &oneProcEngine{cfg: cfg}
}

func (e *oneProcEngine) Reset() {
	*e = oneProcEngine{cfg: e.cfg}
}

func (e *oneProcEngine) Result() int64 { return e.res }

func (e *oneProcEngine) Done() bool { return e.done }

func (e *oneProcEngine) Step(in Input) {
	// registered output: reflects the state this edge starts from
	done := e.ctrl == stateDone
	switch e.ctrl {
	case stateIdle, stateDone:
		if in.Start {
			e.shift = in.Value & e.cfg.mask()
			e.diff = 0
			e.count = 0
			e.ctrl = stateCompute
		}
	case stateCompute:
		contrib := int64(-1)
		if e.shift&1 != 0 {
			contrib = 1
		}
		countDone := e.count == uint(e.cfg.Width-1)
		e.shift >>= 1
		e.diff += contrib
		e.count = (e.count + 1) & e.cfg.countMask()
		if countDone {
			e.res = e.diff
			e.ctrl = stateDone
		}
	}
	e.done = done
}
