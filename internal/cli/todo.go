package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HaruLab/travel-planning/internal/domain"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo checklist of an activity",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <activity-id|position> <text>...",
		Short: "Add a todo item",
		Args:  cobra.MinimumNArgs(2),
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
			id, err := s.Store.AddTodo(a.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done <activity-id|position> <todo-id|position>",
		Short: "Toggle a todo item done/undone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			a, td, err := findTodo(s.Store.Snapshot(), args[0], args[1])
			if err != nil {
				return err
			}
			return s.Store.ToggleTodo(a.ID, td.ID)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <activity-id|position> <todo-id|position>",
		Short: "Delete a todo item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			a, td, err := findTodo(s.Store.Snapshot(), args[0], args[1])
			if err != nil {
				return err
			}
			return s.Store.RemoveTodo(a.ID, td.ID)
		},
	})

	return cmd
}

// findTodo resolves an activity reference plus a todo reference (ID or
// 1-based position within that activity's checklist).
func findTodo(t domain.Trip, actRef, todoRef string) (domain.Activity, domain.Todo, error) {
	a, err := findActivity(t, actRef)
	if err != nil {
		return domain.Activity{}, domain.Todo{}, err
	}
	for _, td := range a.Todos {
		if td.ID == todoRef {
			return a, td, nil
		}
	}
	if n, err := strconv.Atoi(todoRef); err == nil && n >= 1 && n <= len(a.Todos) {
		return a, a.Todos[n-1], nil
	}
	return domain.Activity{}, domain.Todo{}, fmt.Errorf("cli: %w: no todo %q on %q", domain.ErrNotFound, todoRef, a.Title)
}
