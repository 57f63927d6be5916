package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaruLab/travel-planning/internal/enrich"
)

func newEnrichCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Fetch coordinates and current weather for activities that lack them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			e := enrich.New(s.Store,
				enrich.NewNominatimGeocoder(""),
				enrich.NewOpenMeteoLookup(""),
				s.Log)
			e.Start(cmd.Context())

			n := e.EnqueueMissing(s.Store.Snapshot())
			e.Stop() // waits for the queue to drain

			fmt.Fprintf(cmd.OutOrStdout(), "enriched %d activities\n", n)
			return nil
		},
	}
}
