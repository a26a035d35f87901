package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type hydrateResult struct {
	Requested int   `json:"requested"`
	Fetched   []int `json:"fetched"`
	Cached    int   `json:"cached"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "hydrate [fdcId...]",
		Short: "Fetch foods into the local cache",
		Long:  "Fetch every listed food that is not cached yet. A USDA rate limit stops the batch; foods fetched before it stay cached.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runHydrate,
	}

	RootCmd.AddCommand(cmd)
}

func runHydrate(cmd *cobra.Command, args []string) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			exitErr("parse fdcId", fmt.Errorf("%q is not a number", arg))
		}
		ids = append(ids, id)
	}

	a := mustOpenApp()
	defer a.Close()

	fetched := a.Hydration.EnsureCached(cmd.Context(), ids)

	cached, err := a.Cache.Len(cmd.Context())
	if err != nil {
		exitErr("count cached foods", err)
	}
	printJSON(hydrateResult{Requested: len(ids), Fetched: fetched, Cached: cached})
}
