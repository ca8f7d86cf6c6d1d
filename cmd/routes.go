package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"nemoris-api/core/bootstrap"
	"nemoris-api/core/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// routesCmd represents the routes command
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the mounted route table",
	Long:  `Builds the gateway with the current configuration and prints every route without listening or connecting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		app, err := buildApp(cfg, bootstrap.Static(nil, nil), zap.NewNop())
		if err != nil {
			return err
		}

		routes := app.GetRoutes(true)
		sort.SliceStable(routes, func(i, j int) bool {
			if routes[i].Path == routes[j].Path {
				return routes[i].Method < routes[j].Method
			}
			return routes[i].Path < routes[j].Path
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, r := range routes {
			if r.Method == "HEAD" || r.Method == "USE" {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(routesCmd)
}
