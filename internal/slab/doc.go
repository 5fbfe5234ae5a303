// Package slab implements the subduction heat-diffusion simulator: a cold
// lithosphere column sinking one row per step through a uniformly hot mantle
// grid, with explicit finite-difference diffusion between the two.
//
// A [Simulator] is single-threaded and owns its grid buffers for the whole
// run; [Simulator.Snapshot] hands out detached copies, so renderers can
// never observe mid-step state.
package slab
