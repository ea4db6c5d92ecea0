package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/dash/internal/output"
	"github.com/idilsaglam/dash/internal/widget"
)

// widgetsReport is the machine-readable widget snapshot.
type widgetsReport struct {
	Rates    *widget.Rates     `json:"rates,omitempty" yaml:"rates,omitempty"`
	Location *widget.Location  `json:"location,omitempty" yaml:"location,omitempty"`
	Errors   map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func report(snap widget.Snapshot) widgetsReport {
	var r widgetsReport
	errs := map[string]string{}
	if snap.Rates.OK() {
		r.Rates = &snap.Rates.Value
	} else {
		errs["rates"] = snap.Rates.Err.Error()
	}
	if snap.Location.OK() {
		r.Location = &snap.Location.Value
	} else {
		errs["location"] = snap.Location.Err.Error()
	}
	if len(errs) > 0 {
		r.Errors = errs
	}
	return r
}

func newWidgetsCommand(s *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "widgets",
		Short: "Refresh and show the dashboard widgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := s.container.Board.Refresh(cmd.Context())
			if format == "" {
				s.printer.Panel(s.printer.Theme().WidgetLines(snap))
				return nil
			}
			f, err := output.ParseFormat(format)
			if err != nil {
				return usageError{msg: "widgets: " + err.Error()}
			}
			return output.Write(cmd.OutOrStdout(), report(snap), f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml instead of a panel")
	return cmd
}

func newTUICommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), s.container, s.printer)
		},
	}
}
