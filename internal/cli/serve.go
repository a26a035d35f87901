package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	httpDelivery "github.com/macrolens/nutrilog/internal/delivery/http"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run:   runServe,
	}

	cmd.Flags().String("port", "", "Port to listen on (default: server.port)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.Close()

	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = a.Config.Server.Port
	}

	router := httpDelivery.SetupRouter(a.Config, httpDelivery.NewHandler(a))

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		exitErr("serve", err)
	}
}
