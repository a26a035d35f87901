package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "food [fdcId]",
		Short: "Show a food's nutrients",
		Args:  cobra.ExactArgs(1),
		Run:   runFood,
	}

	RootCmd.AddCommand(cmd)
}

func runFood(cmd *cobra.Command, args []string) {
	fdcID, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("parse fdcId", fmt.Errorf("%q is not a number", args[0]))
	}

	a := mustOpenApp()
	defer a.Close()

	food, err := a.Foods.Details(cmd.Context(), fdcID)
	if err != nil {
		exitErr("food", err)
	}

	printJSON(food)
}
