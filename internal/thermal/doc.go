// Package thermal provides the value types shared across the simulation:
//
//   - [Field]: a row-major 2-D temperature grid
//   - [Parameters]: an immutable run description with the derived timestep
//
// The explicit finite-difference scheme built on these types is only stable
// for dt at or below [Parameters.StableDt]; nothing in this package enforces
// that at runtime.
package thermal
