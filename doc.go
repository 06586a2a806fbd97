/*
Package bitbalance implements a cycle-accurate compute engine that streams a
fixed-width input value bit by bit and accumulates the signed difference
between the number of set and unset bits. After a run of exactly Width clock
steps, the engine latches result = 2*popcount(v) - Width and raises a
level-triggered done flag.

The same control/datapath problem is implemented several times over: as
combined behavioral models (one-process and two-process), as a finite-state
controller driving a behavioral datapath, as the same controller driving a
bit-level structural netlist built from primitive parts, and with two reset
disciplines for the datapath registers. All variants are cross-checked for
step-identical output sequences; the deliberate latency offsets of the
one-process and registered-reset forms are pinned by tests.

Engines are driven one clock step at a time. Each Step samples its inputs,
computes every transition value from pre-step state only and commits the new
state atomically, so external code always observes a consistent post-edge
view.
*/
package bitbalance
