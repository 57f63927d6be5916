package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var dir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the itinerary to a backup JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			if stdout {
				return s.Adapter.Export(cmd.OutOrStdout())
			}

			path, err := s.Adapter.ExportFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Directory the backup file is written to")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write JSON to stdout instead of a file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the itinerary with a previously exported backup",
		Long: "Replace the itinerary with a previously exported backup.\n" +
			"The imported plan is written to the local cache only; it reaches the\n" +
			"remote endpoint with the next edit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Adapter.Import(f)
		},
	}
}
