package cmd

import (
	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resultsCmd shows the stored rankings for a crew without recomputing.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the stored itinerary rankings for a crew.",
	Long: `Display the last stored ranking for a crew and trek year.

Reads whatever the most recent calculate run stored; nothing is
recomputed. Use --detail to add the per-factor score columns when the
terminal is wide enough, --logs to inspect the calculation audit
history, or --itinerary to drill into the day-by-day camp schedule of
one ranked route.

Examples:
  # Show crew 1's current ranking
  trekrank results --crew 1

  # Include the per-factor breakdown
  trekrank results --crew 1 --detail

  # Export the ranking for a spreadsheet
  trekrank results --crew 1 --output csv --output-file ranking.csv

  # Review when and how past runs happened
  trekrank results --crew 1 --logs

  # Inspect the camps on the crew's top choice
  trekrank results --itinerary 12-1`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ow := outwriter.NewOutWriter()

		if code := viper.GetString("itinerary"); code != "" {
			it, err := storeManager.Catalog().GetItineraryByCode(rootCtx, code, cfg.Year)
			if err != nil {
				contract.LogFatal("Cannot load itinerary", err)
			}
			stops, err := storeManager.Catalog().GetCampStops(rootCtx, it.ID, cfg.Year)
			if err != nil {
				contract.LogFatal("Cannot load camp stops", err)
			}
			if err := ow.WriteCampStops(stops, it, cfg); err != nil {
				contract.LogFatal("Cannot write camp stops", err)
			}
			return
		}

		if viper.GetBool("logs") {
			logs, err := storeManager.Results().GetCalculationLogs(rootCtx, cfg.CrewID, cfg.Year)
			if err != nil {
				contract.LogFatal("Cannot load calculation logs", err)
			}
			if err := ow.WriteCalculationLogs(logs, cfg); err != nil {
				contract.LogFatal("Cannot write calculation logs", err)
			}
			return
		}

		crew, err := storeManager.Preferences().GetCrew(rootCtx, cfg.CrewID)
		if err != nil {
			contract.LogFatal("Cannot load crew", err)
		}
		results, err := storeManager.Results().GetResults(rootCtx, cfg.CrewID, cfg.Year)
		if err != nil {
			contract.LogFatal("Cannot load results", err)
		}
		if err := ow.WriteResults(results, crew, cfg); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
