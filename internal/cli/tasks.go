package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/dash/internal/ui"
)

func newAddCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add a new task (text can be multiple words)",
		Example: `  dash add "Buy milk"`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: dash add <text...>")
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			task, ok := s.container.Tasks.Add(strings.Join(args, " "))
			if !ok {
				return usagef("add: empty text")
			}
			s.printer.OK("added " + task.ShortID())
			return nil
		},
	}
}

func newListCommand(s *session) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			th := s.printer.Theme()
			tasks := s.container.Tasks.Tasks()
			done, pending := s.container.Tasks.Stats()

			lines := []string{
				th.Header(done, pending),
				th.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
				"",
			}
			if group {
				lines = append(lines, th.GroupedLines(tasks)...)
			} else {
				lines = append(lines, th.TaskLines(tasks)...)
			}
			lines = append(lines, "", th.Muted.Render("Tip: add with `dash add \"Buy milk\"`"))
			s.printer.Panel(lines)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func refArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usagef("usage: dash %s <index|id>", cmd.Name())
	}
	return nil
}

func newDoneCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index|id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of a task",
		Example: "  dash done 2\n  dash done 0f8e4c2a",
		Args:    refArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := ResolveTaskRef(s.container.Tasks.Tasks(), args[0])
			if err != nil {
				return usageError{msg: cmd.Name() + ": " + err.Error()}
			}
			s.container.Tasks.Toggle(task.ID)
			if task.Complete {
				s.printer.OK("reopened " + task.ShortID())
			} else {
				s.printer.OK("completed " + task.ShortID())
			}
			return nil
		},
	}
}

func newRemoveCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index|id>",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    refArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := ResolveTaskRef(s.container.Tasks.Tasks(), args[0])
			if err != nil {
				return usageError{msg: cmd.Name() + ": " + err.Error()}
			}
			s.container.Tasks.Remove(task.ID)
			s.printer.OK("removed " + task.ShortID())
			return nil
		},
	}
}
