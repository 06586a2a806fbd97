// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance

import (
	"math/bits"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MaxWidth is the largest supported input width. Bus values are carried as
// int64 throughout (see dplib), which caps usable widths below 64 bits.
const MaxWidth = 62

// Config holds the construction-time parameters of an engine. Width is
// immutable for the lifetime of an engine instance.
type Config struct {
	// Width is the input width in bits. Must be in [1, MaxWidth].
	Width int
}

func (c Config) validate() error {
	if c.Width < 1 || c.Width > MaxWidth {
		return errors.Errorf("width %d out of range [1, %d]", c.Width, MaxWidth)
	}
	return nil
}

// ResultWidth returns the minimal signed bit width able to hold every result
// in [-Width, Width], i.e. ceil(log2(2*Width+1)).
func (c Config) ResultWidth() int {
	return bits.Len(uint(2 * c.Width))
}

// countWidth returns the width of the step counter, sized to hold Width-1.
func (c Config) countWidth() int {
	if c.Width < 3 {
		return 1
	}
	return bits.Len(uint(c.Width - 1))
}

// mask returns the Width-bit input mask.
func (c Config) mask() uint64 {
	return 1<<uint(c.Width) - 1
}

// countMask returns the step counter wrap mask.
func (c Config) countMask() uint {
	return 1<<uint(c.countWidth()) - 1
}

// An Input carries the external stimulus sampled by an engine on one clock
// step. Value is only looked at on the step a run begins.
type Input struct {
	Start bool
	Value uint64
}

// An Engine is one implementation of the bit balance computation. Step
// advances the simulation by one clock step; Result and Done report the
// post-step outputs. Result is only meaningful while Done reports true.
type Engine interface {
	// Reset forces all state back to its zero/idle values, like an
	// asynchronous global reset held over a full step.
	Reset()
	// Step samples in and advances the engine by one clock step.
	Step(in Input)
	// Result returns the latched result of the most recently completed run.
	Result() int64
	// Done reports whether Result holds a valid, current result.
	Done() bool
}

// A Variant selects one of the equivalent engine implementations.
type Variant int

// Engine variants.
const (
	// TwoProc is the two-process combined model: a pure next-state function
	// plus a single atomic state commit. This is the reference model.
	TwoProc Variant = iota
	// OneProc is the one-process combined model. All outputs are registered,
	// so done becomes visible one step after the reference model.
	OneProc
	// FSM is the separated controller driving a behavioral datapath with
	// mux-style register resets.
	FSM
	// ResetFSM is the separated controller driving a datapath with a
	// dedicated synchronous reset line per register.
	ResetFSM
	// Structural is the separated controller driving a bit-level netlist
	// built from wire and dplib parts.
	Structural
	// Registered is the four-state controller whose reset outputs are
	// registered. A run takes one extra step.
	Registered
)

func (v Variant) String() string {
	switch v {
	case TwoProc:
		return "twoproc"
	case OneProc:
		return "oneproc"
	case FSM:
		return "fsm"
	case ResetFSM:
		return "resetfsm"
	case Structural:
		return "structural"
	case Registered:
		return "registered"
	}
	return "unknown"
}

// ParseVariant converts a variant name, as reported by Variant.String, back
// to a Variant.
func ParseVariant(s string) (Variant, error) {
	for v := TwoProc; v <= Registered; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, errors.Errorf("unknown engine variant %q", s)
}

// New returns a new engine of the given variant.
func New(cfg Config, v Variant) (Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Debugf("bitbalance: new %s engine, width=%d, resultWidth=%d", v, cfg.Width, cfg.ResultWidth())
	switch v {
	case TwoProc:
		return newTwoProc(cfg), nil
	case OneProc:
		return newOneProc(cfg), nil
	case FSM:
		return newFSMEngine(newController(), newBehavioralDatapath(cfg)), nil
	case ResetFSM:
		return newFSMEngine(newController(), newResetDatapath(cfg)), nil
	case Structural:
		return newStructural(cfg)
	case Registered:
		return newFSMEngine(newRegisteredController(), newResetDatapath(cfg)), nil
	}
	return nil, errors.Errorf("unknown engine variant %d", v)
}

// fsmEngine couples a Controller with a Datapath. The control directives for
// a step are always derived from the datapath status of the previous edge,
// never from values being written during the same step.
type fsmEngine struct {
	ctrl Controller
	dp   Datapath
}

func newFSMEngine(ctrl Controller, dp Datapath) *fsmEngine {
	return &fsmEngine{ctrl: ctrl, dp: dp}
}

func (e *fsmEngine) Reset() {
	e.ctrl.Reset()
	e.dp.Reset()
}

func (e *fsmEngine) Step(in Input) {
	st := e.dp.Status()
	d := e.ctrl.Step(st, in.Start)
	e.dp.Apply(d, in.Value)
}

func (e *fsmEngine) Result() int64 { return e.dp.Result() }

func (e *fsmEngine) Done() bool { return e.ctrl.Done() }
