package cli

import (
	"github.com/spf13/cobra"

	"github.com/macrolens/nutrilog/internal/domain"
)

func init() {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Report nutrient totals for the whole log",
		Run:   runTotals,
	}

	cmd.Flags().StringP("profile", "p", "", "Daily value profile: adult, infant, child_1_3 or pregnant_lactating (default: stored profile)")

	RootCmd.AddCommand(cmd)
}

func runTotals(cmd *cobra.Command, args []string) {
	profile, _ := cmd.Flags().GetString("profile")

	a := mustOpenApp()
	defer a.Close()

	snapshot, err := a.Log.Snapshot(cmd.Context(), domain.Profile(profile))
	if err != nil {
		exitErr("totals", err)
	}

	printJSON(snapshot)
}
