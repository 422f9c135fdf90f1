// Package kahuna is a generic Wave Function Collapse framework: fill a space
// of cells so that every pair of neighbors is allowed by a rule, collapsing
// one cell at a time and propagating the consequences.
//
// What is inside?
//
//	A small library split along the seams of the algorithm:
//		• Space: where cells live and who their neighbors are
//		• State: what a cell may still become (sets, bitsets)
//		• Rule: the compiled adjacency table plus an observer
//		• Collapse: the solver loop (sweep, observe, propagate)
//		• Prototype: 3D module sets loaded from JSON or YAML
//
// Everything is organized under these subpackages:
//
//	space/      Space interface, CubeGrid, Offset, Slot and Regions
//	state/      State interface, SetState, BitState
//	rule/       Builder, Rule, Uniform/Weighted observers, Source
//	collapse/   Solve, options, ContradictionError, Prometheus metrics
//	prototype/  module prototypes, the bundled nine-module set
//	config/     YAML run configuration for the kahuna command
//	cmd/kahuna  command line front end (solve, inspect)
//
// Quick example, two tiles that must alternate along X:
//
//	A B A B
//
// is the only family of solutions besides B A B A; Solve picks one of them
// with the seeded Source and leaves every cell with a single state.
//
//	go get github.com/katalvlaran/kahuna
package kahuna
