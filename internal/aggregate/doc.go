// Package aggregate turns the distinct dose tuples of the vaccine table into
// per-country summaries.
//
// Counts are built by commutative summation, so the result does not depend on
// the order in which the store returns tuples. Every country entry carries
// vaxstat.TotalDosesKey, which always equals the sum of that country's vaccine
// accumulators. Percentages are derived from counts and drop the total key.
//
// A tuple whose addition would overflow an accumulator is logged and dropped
// from the summary instead of failing the whole computation. Callers can read
// Aggregator.Skipped to detect an undercounted summary.
package aggregate
