// Package automaton runs a cellular automaton generation by generation.
//
// A [Simulator] owns one grid and repeats a fixed cycle:
//
//  1. grow the grid by one background layer per side (if configured)
//  2. scan every cell, collect its neighbors and apply the rule
//  3. write all changes in one batch
//  4. advance the generation counter
//
// The scan always reads the previous generation: changes are only written
// once every cell has been evaluated.
//
// # Termination
//
// [FixedGenerations] stops after a set number of generations. [FixedPoint]
// stops once a generation leaves the active count unchanged. It compares the
// count only, so two different grids with equal counts end the run.
//
// # Example
//
//	g, _ := grid.FromRows(rows, 3)
//	s, _ := automaton.New(g, rules.LifeRule{}, automaton.LifeConfig(6))
//	res, _ := s.Run(ctx)
//	fmt.Println(res.Count)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Independent simulators may run
// concurrently.
package automaton
