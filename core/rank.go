package core

import (
	"sort"

	"github.com/huangsam/trekrank/schema"
)

// rankResults sorts results by total score in descending order and assigns
// dense 1-based rankings. Equal totals order by itinerary code ascending,
// so a run over unchanged inputs always produces the same ranking.
// ChoiceNumber mirrors Ranking: both mean "this crew's Nth choice".
func rankResults(results []schema.CrewResult) []schema.CrewResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].Code < results[j].Code
	})
	for i := range results {
		results[i].Ranking = i + 1
		results[i].ChoiceNumber = i + 1
	}
	return results
}
