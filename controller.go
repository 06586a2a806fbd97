// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitbalance

// controller state.
type state int

const (
	stateIdle state = iota
	stateInit       // registered-reset controller only
	stateCompute
	stateDone
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateInit:
		return "init"
	case stateCompute:
		return "compute"
	case stateDone:
		return "done"
	}
	return "invalid"
}

// Directives is the set of control signals issued by a controller to its
// datapath for one clock step.
type Directives struct {
	// LoadData selects the external input on the shift register's data mux
	// and loads it.
	LoadData bool
	// ShiftEnable shifts the input register right by one bit.
	ShiftEnable bool
	// DiffReset clears the difference accumulator.
	DiffReset bool
	// DiffEnable accumulates the current bit's contribution.
	DiffEnable bool
	// CountReset clears the step counter.
	CountReset bool
	// CountEnable increments the step counter.
	CountEnable bool
	// ResultEnable latches the step's next difference value as the result.
	ResultEnable bool
}

// Status is the datapath state visible to a controller.
type Status struct {
	// CountDone reports that the step counter has reached Width-1.
	CountDone bool
}

// A Controller is a finite-state machine sequencing a Datapath. Step takes
// the datapath status and the start request as sampled before the clock
// edge, advances the controller state and returns the directives to apply on
// that edge.
type Controller interface {
	Step(st Status, start bool) Directives
	// Done reports whether the controller is in its result-ready state.
	Done() bool
	Reset()
}

// fsmController is the three-state controller. A start request is honored in
// the idle and result-ready states only; done drops on the step after the
// restarting edge, never on the step start is observed.
type fsmController struct {
	state state
}

func newController() *fsmController { return &fsmController{} }

func (c *fsmController) Reset() { c.state = stateIdle }

func (c *fsmController) Done() bool { return c.state == stateDone }

func (c *fsmController) Step(st Status, start bool) Directives {
	var d Directives
	switch c.state {
	case stateIdle, stateDone:
		if start {
			d.LoadData = true
			d.DiffReset = true
			d.CountReset = true
			c.state = stateCompute
		}
	case stateCompute:
		d.ShiftEnable = true
		d.DiffEnable = true
		d.CountEnable = true
		if st.CountDone {
			// capture the accumulator value produced on this same edge
			d.ResultEnable = true
			c.state = stateDone
		}
	}
	return d
}

// registeredController is the four-state controller variant where the reset
// directives are registered: a requested reset only reaches the datapath on
// the following step, so an init state holds off accumulation until the
// resets have taken effect. The input is loaded on the start step, while it
// is present, and held through init. Runs take one step longer than with
// fsmController.
type registeredController struct {
	state    state
	diffRst  bool
	countRst bool
}

func newRegisteredController() *registeredController { return &registeredController{} }

func (c *registeredController) Reset() { *c = registeredController{} }

func (c *registeredController) Done() bool { return c.state == stateDone }

func (c *registeredController) Step(st Status, start bool) Directives {
	// registered outputs: emit the resets requested on the previous step
	d := Directives{DiffReset: c.diffRst, CountReset: c.countRst}
	c.diffRst, c.countRst = false, false
	switch c.state {
	case stateIdle, stateDone:
		if start {
			// the input is only valid on this step, load it now
			d.LoadData = true
			c.diffRst = true
			c.countRst = true
			c.state = stateInit
		}
	case stateInit:
		// wait for the registered resets to land
		c.state = stateCompute
	case stateCompute:
		d.ShiftEnable = true
		d.DiffEnable = true
		d.CountEnable = true
		if st.CountDone {
			d.ResultEnable = true
			c.state = stateDone
		}
	}
	return d
}
