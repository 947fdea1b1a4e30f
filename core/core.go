// Package core implements the itinerary scoring and ranking engine: rating
// aggregation, the six factor scorers, composition, ranking and run
// orchestration. All scoring is pure computation over explicit inputs; the
// store interfaces in internal/contract supply reference data and receive
// the ranked result set.
package core
