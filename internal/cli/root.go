// Package cli implements the nutrilog CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/macrolens/nutrilog/config"
	"github.com/macrolens/nutrilog/internal/app"
	"github.com/macrolens/nutrilog/internal/domain"
)

var (
	dbPath string

	// opened is the app of the running command, closed by exitErr since
	// os.Exit skips deferred calls.
	opened *app.App
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "nutrilog",
	Short: "Track what you eat against FDA daily values",
	Long:  "Search USDA FoodData Central, cache foods locally and report nutrient totals for the day.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $NUTRILOG_STORAGE_PATH or ~/.nutrilog/nutrilog.db)")
}

// openApp loads configuration and wires the services. --db forces the
// sqlite store at the given path.
func openApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Type = "sqlite"
		cfg.Storage.Path = dbPath
	}
	return app.New(cfg)
}

func mustOpenApp() *app.App {
	a, err := openApp()
	if err != nil {
		exitErr("open", err)
	}
	opened = a
	return a
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// exitCode is 2 for USDA rate limiting so scripts can retry later, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrRateLimited) {
		return 2
	}
	return 1
}

func exitErr(msg string, err error) {
	if opened != nil {
		opened.Close()
		opened = nil
	}

	if exitCode(err) == 2 {
		fmt.Fprintf(os.Stderr, "error: %s: USDA rate limit reached, try again later\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	}
	os.Exit(exitCode(err))
}
