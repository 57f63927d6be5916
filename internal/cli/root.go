// Package cli implements the voyage command line client: a scriptable
// interface over the itinerary store plus a live timeline view.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/HaruLab/travel-planning/internal/config"
)

// App carries the persistent flag values shared by every subcommand.
type App struct {
	RemoteURL string
	CachePath string
	Verbose   bool
}

// NewRootCmd builds the voyage command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}
	env := config.LoadClient()

	cmd := &cobra.Command{
		Use:          "voyage",
		Short:        "Personal travel itinerary planner",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Show the itinerary timeline for the current time of day
  voyage show

  # Follow the timeline live
  voyage watch

  # Edit the plan
  voyage add --type train --title "やまびこ52号" --from 盛岡駅 --to 大宮駅 --start 09:12 --end 11:30
  voyage move 3 1

  # Move the plan between machines
  voyage export --dir ~/backups
  voyage import ~/backups/travel.json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show the timeline once.
			if len(args) == 0 {
				return runShow(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.RemoteURL, "remote", env.RemoteURL,
		"Itinerary endpoint of a running server (empty: offline, cache only)")
	cmd.PersistentFlags().StringVar(&app.CachePath, "cache", env.CachePath,
		"SQLite cache file (empty: per-user default)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false,
		"Log sync and enrichment details to stderr")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newWatchCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newTitleCmd(app))
	cmd.AddCommand(newDateCmd(app))
	cmd.AddCommand(newTodoCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEnrichCmd(app))

	return cmd
}
