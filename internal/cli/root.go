// Package cli provides the command-line interface for dash.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/dash/internal/app"
	"github.com/idilsaglam/dash/internal/config"
	"github.com/idilsaglam/dash/internal/exitcode"
	"github.com/idilsaglam/dash/internal/tui"
	"github.com/idilsaglam/dash/internal/ui"
)

// Options are the root flags shared by every subcommand.
type Options struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	Theme      string
	Color      string
	Ephemeral  bool
}

// Factory builds the container for a loaded configuration.
type Factory func(cfg *config.Config) (*app.Container, error)

// launchTUIFunc starts the interactive dashboard. Tests replace it.
var launchTUIFunc = func(ctx context.Context, c *app.Container, p *ui.Printer) error {
	return tui.Run(ctx, c, p.Theme())
}

// usageError marks errors caused by bad input; they exit with exitcode.Usage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return usageError{msg: fmt.Sprintf(format, a...)}
}

// session carries the per-invocation state between cobra hooks.
type session struct {
	opt       Options
	factory   Factory
	container *app.Container
	printer   *ui.Printer
}

// newRootCommand builds the dash command tree.
func newRootCommand(factory Factory, version string, out, errOut io.Writer) (*cobra.Command, *session) {
	if factory == nil {
		factory = app.New
	}
	s := &session{factory: factory, printer: ui.NewPrinter(out, errOut, "classic", ui.ColorAuto)}

	root := &cobra.Command{
		Use:   "dash",
		Short: "Personal dashboard: tasks, rates and your spot on the map",
		Long: `dash keeps a small persisted task list next to a few read-only widgets
(currency rates and a map link for your location).

Run without arguments to open the interactive dashboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return s.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), s.container, s.printer)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	f := root.PersistentFlags()
	f.StringVar(&s.opt.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/dash/config.toml)")
	f.StringVar(&s.opt.DataDir, "data-dir", "", "directory holding the task list")
	f.StringVar(&s.opt.LogLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&s.opt.Theme, "theme", "", "classic, neon or mono")
	f.StringVar(&s.opt.Color, "color", "", "auto, always or never")
	f.BoolVar(&s.opt.Ephemeral, "ephemeral", false, "keep tasks in memory only")

	root.AddCommand(
		newAddCommand(s),
		newListCommand(s),
		newDoneCommand(s),
		newRemoveCommand(s),
		newExportCommand(s),
		newWidgetsCommand(s),
		newTUICommand(s),
	)
	return root, s
}

// open loads config, applies flag overrides and builds the container.
func (s *session) open(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}
	if cmd.HasParent() && cmd.Parent().Name() == "completion" {
		return nil
	}

	cfg, err := config.Load(s.opt.ConfigPath)
	if err != nil {
		return err
	}
	if s.opt.DataDir != "" {
		cfg.Storage.Dir = s.opt.DataDir
	}
	if s.opt.LogLevel != "" {
		cfg.Log.Level = s.opt.LogLevel
	}
	if s.opt.Theme != "" {
		cfg.UI.Theme = s.opt.Theme
	}
	if s.opt.Color != "" {
		cfg.UI.Color = s.opt.Color
	}
	if s.opt.Ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}

	s.printer = ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.UI.Theme, cfg.UI.Color)
	c, err := s.factory(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	s.container = c
	c.Logger.Debug("command start", "command", cmd.CommandPath())
	return nil
}

func (s *session) close() error {
	if s.container == nil {
		return nil
	}
	err := s.container.Close()
	s.container = nil
	return err
}

// Run executes the command tree with args and returns an exit code. Errors
// are printed through the themed printer.
func Run(ctx context.Context, factory Factory, version string, args []string, out, errOut io.Writer) int {
	root, s := newRootCommand(factory, version, out, errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	// PostRun is skipped when RunE fails.
	if cerr := s.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return exitcode.Success
	}

	s.printer.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		s.printer.Hint("Hint: run `dash --help` for usage")
		return exitcode.Usage
	}
	return exitcode.Failure
}
