// Package grid provides the coordinate model and dense cell store shared by
// every automaton variant.
//
//   - [Position]: cell address over up to [MaxDims] dimensions
//   - [Vector]: signed displacement, added to a Position
//   - [Grid]: flat, stride-indexed, rectangular store of cells
//   - [ParseRows]: text rows to cells, rejecting unknown characters and ragged rows
//
// # Generation discipline
//
// A generation is computed from a complete snapshot. Scan with [Grid.Cells],
// collect [Change] values, then write them with [Grid.ApplyChanges]. Never
// call [Grid.Set] while a scan of the same grid is in progress.
//
// # Growth
//
// [Grid.Grow] returns a new grid two cells larger along every dimension with
// the old contents shifted by one, so activity at the edge has room to spread.
package grid
