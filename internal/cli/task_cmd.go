package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/service"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task MEMBER",
		Short: "Show the member's active task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.Current(ctx, m.ID)
			if errors.Is(err, service.ErrNoActiveTask) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no active task. Draw one with 'queendom task draw'.\n", m.DisplayName())
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTask(task, app.now()))
			return nil
		},
	}

	cmd.AddCommand(
		newTaskDrawCmd(app),
		newTaskSkipCmd(app),
		newTaskAtoneCmd(app),
		newTaskHistoryCmd(app),
		newTaskExpireCmd(app),
		newTaskQueueCmd(app),
	)
	return cmd
}

func newTaskDrawCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "draw MEMBER",
		Short: fmt.Sprintf("Assign the next task (needs %d coins)", domain.TaskCost),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.Draw(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTask(task, app.now()))
			return nil
		},
	}
}

func newTaskSkipCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "skip MEMBER",
		Short: fmt.Sprintf("Abandon the active task for a %d coin penalty", domain.TaskPenalty),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to skip without --yes")
				}
				confirmed := false
				title := fmt.Sprintf("Skip %s's task for %d coins?", m.DisplayName(), domain.TaskPenalty)
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			task, err := app.Tasks.Skip(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %q, %d coins taken\n", task.Text, domain.TaskPenalty)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newTaskAtoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "atone MEMBER [TASK]",
		Short: fmt.Sprintf("Retry a failed task for %d coins (default: the latest failure)", domain.AtoneCost),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			var taskID string
			if len(args) == 2 {
				if taskID, err = resolveTaskID(ctx, app, m.ID, args[1]); err != nil {
					return err
				}
			}
			task, err := app.Tasks.Atone(ctx, m.ID, taskID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTask(task, app.now()))
			return nil
		},
	}
}

func newTaskHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history MEMBER",
		Short: "List the member's tasks, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.History(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}
}

func newTaskExpireCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Fail every task past its deadline and apply the penalties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expired, err := app.Tasks.ExpireOverdue(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Expired %d task(s)\n", len(expired))
			return nil
		},
	}
}

func newTaskQueueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue MEMBER",
		Short: "List the tasks queued for a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			items, err := app.Tasks.Queue(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQueue(items))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add MEMBER TEXT...",
		Short: "Queue a task; queued tasks are drawn before the pool",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := app.Tasks.Enqueue(ctx, m.ID, strings.Join(args[1:], " "))
			if errors.Is(err, domain.ErrEmptyTask) {
				return fmt.Errorf("task text is required")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Queued %q for %s\n", item.Text, m.DisplayName())
			return nil
		},
	}, &cobra.Command{
		Use:   "rm MEMBER N",
		Short: "Remove the Nth queued task (as numbered by 'task queue')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			items, err := app.Tasks.Queue(ctx, m.ID)
			if err != nil {
				return err
			}
			if n < 1 || n > len(items) {
				return fmt.Errorf("position %d out of range (queue has %d)", n, len(items))
			}
			item := items[n-1]
			if err := app.Tasks.Dequeue(ctx, m.ID, item.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from the queue\n", item.Text)
			return nil
		},
	})
	return cmd
}

// resolveTaskID accepts a full id or a prefix of one of the member's task ids.
func resolveTaskID(ctx context.Context, app *App, memberID, ref string) (string, error) {
	tasks, err := app.Tasks.History(ctx, memberID)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, t := range tasks {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, strings.ToLower(ref)) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}
