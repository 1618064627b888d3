// Package scoring ranks records with keyword and recency heuristics.
//
// Every function here is pure: given the same input and the same now it
// returns the same score. Callers pass now explicitly so that a whole batch
// is scored against one clock reading and tests can pin it.
package scoring
