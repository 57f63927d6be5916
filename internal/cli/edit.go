package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/store"
)

// activityFlags collects the editable activity fields so add and edit share
// one flag surface.
type activityFlags struct {
	kind     string
	title    string
	from     string
	to       string
	start    string
	end      string
	distance string
	note     string
	price    float64
	urls     []string
}

func (f *activityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "type", string(domain.KindOther),
		"Activity type (train|bus|plane|walk|sightseeing|food|stay|other)")
	cmd.Flags().StringVar(&f.title, "title", "", "Activity title")
	cmd.Flags().StringVar(&f.from, "from", "", "Origin / place name")
	cmd.Flags().StringVar(&f.to, "to", "", "Destination (transport types)")
	cmd.Flags().StringVar(&f.start, "start", "", `Start time ("HH:MM")`)
	cmd.Flags().StringVar(&f.end, "end", "", `End time ("HH:MM")`)
	cmd.Flags().StringVar(&f.distance, "distance", "", `Distance annotation, e.g. "5.2km"`)
	cmd.Flags().StringVar(&f.note, "note", "", "Free-text note")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Price in yen")
	cmd.Flags().StringSliceVar(&f.urls, "url", nil, "Reference URL (repeatable)")
}

func newAddCmd(app *App) *cobra.Command {
	var f activityFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append an activity to the itinerary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(f.kind)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			a := domain.Activity{
				ID:          store.NewID(),
				Kind:        kind,
				Title:       f.title,
				Origin:      f.from,
				Destination: f.to,
				StartTime:   f.start,
				EndTime:     f.end,
				Distance:    f.distance,
				Note:        f.note,
				Price:       f.price,
				URLs:        f.urls,
			}
			if err := s.Store.AddActivity(a); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.ID)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var f activityFlags

	cmd := &cobra.Command{
		Use:   "edit <activity-id|position>",
		Short: "Change fields of an existing activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := findActivity(s.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			// Only flags the user actually passed overwrite fields.
			if cmd.Flags().Changed("type") {
				kind, err := domain.ParseKind(f.kind)
				if err != nil {
					return err
				}
				a.Kind = kind
			}
			if cmd.Flags().Changed("title") {
				a.Title = f.title
			}
			if cmd.Flags().Changed("from") {
				a.Origin = f.from
			}
			if cmd.Flags().Changed("to") {
				a.Destination = f.to
			}
			if cmd.Flags().Changed("start") {
				a.StartTime = f.start
			}
			if cmd.Flags().Changed("end") {
				a.EndTime = f.end
			}
			if cmd.Flags().Changed("distance") {
				a.Distance = f.distance
			}
			if cmd.Flags().Changed("note") {
				a.Note = f.note
			}
			if cmd.Flags().Changed("price") {
				a.Price = f.price
			}
			if cmd.Flags().Changed("url") {
				a.URLs = f.urls
			}

			return s.Store.UpdateActivity(a)
		},
	}

	f.register(cmd)
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <activity-id|position>",
		Aliases: []string{"remove"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			a, err := findActivity(s.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			return s.Store.RemoveActivity(a.ID)
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from-position> <to-position>",
		Short: "Reorder an activity (positions as shown by voyage show, 1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Store.Reorder(from-1, to-1)
		},
	}
}

func newTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "title <text>...",
		Short: "Set the trip title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Store.SetTitle(strings.Join(args, " "))
		},
	}
}

func newDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "date <text>...",
		Short: `Set the trip date label (free text, e.g. "2026年1月")`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Store.SetDate(strings.Join(args, " "))
		},
	}
}

// findActivity resolves a user-supplied reference, either a full activity ID
// or a 1-based position, against the current sequence.
func findActivity(t domain.Trip, ref string) (domain.Activity, error) {
	if i := t.IndexOf(ref); i >= 0 {
		return t.Activities[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(t.Activities) {
		return t.Activities[n-1], nil
	}
	return domain.Activity{}, fmt.Errorf("cli: %w: no activity %q", domain.ErrNotFound, ref)
}
