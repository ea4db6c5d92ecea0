package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/dash/internal/output"
)

func newExportCommand(s *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the task list as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return usageError{msg: "export: " + err.Error()}
			}
			return output.WriteTasks(cmd.OutOrStdout(), s.container.Tasks.Tasks(), f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", output.FormatJSON, "json or yaml")
	return cmd
}
