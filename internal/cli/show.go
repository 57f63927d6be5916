package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HaruLab/travel-planning/internal/timeline"
)

func newShowCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the itinerary timeline once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, at)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `Render as if it were this time of day ("HH:MM")`)
	return cmd
}

func runShow(cmd *cobra.Command, app *App, at string) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return err
	}
	defer s.Close()

	now := timeline.At(time.Now())
	if at != "" {
		now = timeline.ParseClock(at)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderTrip(s.Store.Snapshot(), now, s.Adapter.Status()))
	return nil
}
