// Package budget estimates the token footprint of suggestion responses and
// trims suggestion lists to fit a configured budget.
//
// Estimates are a coarse characters-per-token heuristic, good enough to
// bound payload size before it reaches a language model; they are not a
// tokenizer.
package budget
