package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"travelbrowser/internal/log"
	"travelbrowser/internal/mcpserver"
	"travelbrowser/internal/output"
	"travelbrowser/ui/console"
)

const version = "0.1.0"

func listCmd() *cobra.Command {
	var country string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the destinations, their places and weather",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := output.Collect(cmd.Context(), appCtx.Repo, country, appCtx.Config.InitialSort)
			if err != nil {
				return err
			}
			console.Print(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().StringVarP(&country, "country", "c", "", "only list this country")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with the bundled destinations if it is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !appCtx.Config.Seed {
				return fmt.Errorf("seeding is disabled by --no-seed")
			}
			if appCtx.Seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog seeded")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already populated, nothing to do")
			}
			return nil
		},
	}
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog and a headless browser over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := appCtx.StartGraph(ctx); err != nil {
				log.WarningLog.Printf("graph mirror disabled: %v", err)
			}
			if err := appCtx.StartGuide(ctx); err != nil {
				log.WarningLog.Printf("guide disabled: %v", err)
			}

			browser := mcpserver.DefaultBrowserConfig()
			browser.Locale = appCtx.Config.Locale
			browser.Threshold = appCtx.Config.VisibleThreshold
			browser.Strip.ItemSize = appCtx.Config.CardWidth

			// A nil Asker keeps ask_guide unregistered.
			var asker mcpserver.Asker
			if appCtx.Guide != nil {
				asker = appCtx.Guide
			}

			srv := mcpserver.NewServer(mcpserver.Config{
				ServerName:    "travelbrowser",
				ServerVersion: version,
				Browser:       browser,
			}, appCtx.Repo, appCtx.Graph, asker)
			return srv.Start(ctx)
		},
	}
}
