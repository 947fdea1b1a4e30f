package core

import (
	"sort"

	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/schema"
)

// AggregateRatings reduces every member's program ratings to one value per
// program using the selected method. Members who never rated a program
// simply do not appear in that program's rating set: Total treats them as
// contributing 0, while Average, Median and Mode consider raters only.
// Any rating outside [0,20] fails the whole run before aggregation.
func AggregateRatings(ratings []schema.ProgramRating, method schema.AggMethod) (map[int64]float64, error) {
	if _, ok := schema.ValidAggMethods[method]; !ok {
		return nil, &contract.ValidationError{Field: "method", Value: string(method), Reason: "must be total, average, median or mode"}
	}

	byProgram := make(map[int64][]int)
	for _, r := range ratings {
		if r.Score < schema.MinProgramRating || r.Score > schema.MaxProgramRating {
			return nil, &contract.ValidationError{
				Field:  "score",
				Value:  r.Score,
				Reason: "program rating must be between 0 and 20",
			}
		}
		byProgram[r.ProgramID] = append(byProgram[r.ProgramID], r.Score)
	}

	out := make(map[int64]float64, len(byProgram))
	for programID, scores := range byProgram {
		out[programID] = aggregate(scores, method)
	}
	return out, nil
}

// aggregate combines one program's rating set. The input is never empty:
// programs with no raters have no entry at all and aggregate to 0 upstream.
func aggregate(scores []int, method schema.AggMethod) float64 {
	switch method {
	case schema.AverageMethod:
		var sum int
		for _, s := range scores {
			sum += s
		}
		return float64(sum) / float64(len(scores))

	case schema.MedianMethod:
		sorted := make([]int, len(scores))
		copy(sorted, scores)
		sort.Ints(sorted)
		n := len(sorted)
		if n%2 == 0 {
			return float64(sorted[n/2-1]+sorted[n/2]) / 2
		}
		return float64(sorted[n/2])

	case schema.ModeMethod:
		counts := make(map[int]int)
		for _, s := range scores {
			counts[s]++
		}
		best, bestCount := 0, -1
		for value, count := range counts {
			// Ties break toward the smaller rating.
			if count > bestCount || (count == bestCount && value < best) {
				best, bestCount = value, count
			}
		}
		return float64(best)

	default: // TotalMethod
		var sum int
		for _, s := range scores {
			sum += s
		}
		return float64(sum)
	}
}
