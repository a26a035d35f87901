package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search foods",
		Long:  "Search the local food cache, falling back to USDA FoodData Central when nothing cached matches.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	result, err := a.Foods.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		exitErr("search", err)
	}

	printJSON(result)
}
