package cmd

import (
	"fmt"

	"github.com/huangsam/trekrank/core"
	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// calculateCmd recomputes and stores a crew's itinerary rankings.
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Score every itinerary for a crew and store the ranked results.",
	Long: `Run the scoring engine for one crew and trek year.

Every itinerary in the catalog is scored against the crew's stored
preferences and member program surveys, then ranked from best to worst
fit. The full result set replaces any previous run for the same crew,
year and method, and an audit log entry records the run.

Crews without a stored preference record are scored with defaults, so a
calculate run always produces a complete ranking.

Examples:
  # Rank itineraries for crew 1 using member rating totals
  trekrank calculate --crew 1

  # Use the average of member ratings instead
  trekrank calculate --crew 1 --method average

  # Recompute total, average and median in one pass
  trekrank calculate --crew 1 --all-methods

  # Score a future season
  trekrank calculate --crew 1 --year 2027`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		engine := core.NewEngine(storeManager.Catalog(), storeManager.Preferences(), storeManager.Results())

		if cfg.AllMethods {
			sets, err := engine.RunAll(rootCtx, cfg.CrewID, cfg.Year)
			if err != nil {
				contract.LogFatal("Cannot run multi-method calculation", err)
			}
			for _, method := range core.RecalcMethods {
				fmt.Printf("Stored %d results for crew %d using %s aggregation\n",
					len(sets[method]), cfg.CrewID, method)
			}
			return
		}

		results, err := engine.Run(rootCtx, cfg.CrewID, cfg.Year, cfg.Method)
		if err != nil {
			contract.LogFatal("Cannot run calculation", err)
		}

		crew, err := storeManager.Preferences().GetCrew(rootCtx, cfg.CrewID)
		if err != nil {
			contract.LogFatal("Cannot load crew", err)
		}

		ow := outwriter.NewOutWriter()
		if err := ow.WriteResults(results, crew, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
