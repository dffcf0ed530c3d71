// Package potential provides closed-form pair potentials for validation.
//
// Each potential implements the [Pair] interface, giving the interaction
// energy between two particles as a function of separation:
//
//   - [LJ]: the 12-6 Lennard-Jones potential
//   - [WCA]: Weeks-Chandler-Andersen, LJ truncated and shifted at its minimum
//   - [Truncated]: any Pair cut off at a finite radius, optionally
//     energy-shifted so the potential is continuous at the cutoff
//
// These are the reference formulas that external engine results are checked
// against, so they are written for clarity rather than speed.
package potential
