package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Manage meal templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List meal templates, newest first",
		Run:   runMealsList,
	}

	cmd.AddCommand(list)
	RootCmd.AddCommand(cmd)
}

func runMealsList(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	meals, err := a.Meals.List(cmd.Context())
	if err != nil {
		exitErr("list meals", err)
	}

	if len(meals) == 0 {
		printJSON([]any{})
		return
	}
	printJSON(meals)
}
