// Package calculator implements the three bill-split strategies as pure
// functions over a cart snapshot: equal, per-item assignment and
// dietary-category grouping.
package calculator
