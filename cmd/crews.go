package cmd

import (
	"github.com/huangsam/trekrank/internal/contract"
	"github.com/huangsam/trekrank/internal/outwriter"
	"github.com/spf13/cobra"
)

// crewsCmd lists the registered crews.
var crewsCmd = &cobra.Command{
	Use:   "crews",
	Short: "List registered crews and inspect their members.",
	Long: `Show every crew registered in the store.

Crews are listed alphabetically with their id and size. Use the id with
--crew on the calculate and results commands.

Examples:
  # List all crews
  trekrank crews

  # Show crew 1's members and survey progress
  trekrank crews members --crew 1`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		crews, err := storeManager.Preferences().ListCrews(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot list crews", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteCrews(crews, cfg); err != nil {
			contract.LogFatal("Cannot write crews", err)
		}
	},
}

// crewsMembersCmd shows one crew's roster and survey progress.
var crewsMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "Show a crew's members and their survey completion status.",
	Long: `List the members of one crew for the selected trek year.

A member counts as surveyed once they have submitted at least one
program rating for the year. Calculate runs work either way, but
rankings are only as good as the surveys behind them.

Examples:
  # Check who still owes a survey
  trekrank crews members --crew 1

  # Check a past season
  trekrank crews members --crew 1 --year 2025`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		crew, err := storeManager.Preferences().GetCrew(rootCtx, cfg.CrewID)
		if err != nil {
			contract.LogFatal("Cannot load crew", err)
		}
		members, err := storeManager.Preferences().ListMembers(rootCtx, cfg.CrewID, cfg.Year)
		if err != nil {
			contract.LogFatal("Cannot list members", err)
		}
		ow := outwriter.NewOutWriter()
		if err := ow.WriteMembers(members, crew, cfg); err != nil {
			contract.LogFatal("Cannot write members", err)
		}
	},
}
