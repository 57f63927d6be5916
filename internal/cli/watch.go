package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/HaruLab/travel-planning/internal/timeline"
)

// watchInterval is how often the live view refreshes. The per-activity
// countdown has seconds resolution, so the refresh must too.
const watchInterval = time.Second

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the itinerary timeline live (Ctrl-C to quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(stop)

			ticker := time.NewTicker(watchInterval)
			defer ticker.Stop()

			out := cmd.OutOrStdout()
			draw := func() {
				// ANSI clear-screen plus home, like watch(1).
				fmt.Fprint(out, "\x1b[2J\x1b[H")
				fmt.Fprint(out, renderTrip(s.Store.Snapshot(), timeline.At(time.Now()), s.Adapter.Status()))
			}

			draw()
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-stop:
					return nil
				case <-ticker.C:
					draw()
				}
			}
		},
	}
}
