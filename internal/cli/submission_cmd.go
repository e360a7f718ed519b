package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
)

func newSubmitCmd(app *App) *cobra.Command {
	var task bool
	var proof, note string
	at := newTimestampFlag(app.Location)

	cmd := &cobra.Command{
		Use:   "submit MEMBER",
		Short: "Record a routine proof (or a task proof with --task)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}

			sub := &domain.Submission{
				MemberID:    m.ID,
				Kind:        domain.SubmissionRoutine,
				ProofURL:    proof,
				Note:        note,
				SubmittedAt: at.Time(),
			}
			if task {
				sub.Kind = domain.SubmissionTask
			}
			if err := app.Submissions.Record(ctx, sub); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s proof %s for %s\n", sub.Kind, sub.ID[:8], m.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVar(&task, "task", false, "Record a task proof instead of a routine proof")
	cmd.Flags().StringVar(&proof, "proof", "", "Proof media URL")
	cmd.Flags().StringVar(&note, "note", "", "Free-text note")
	cmd.Flags().Var(at, "at", "Submission time (RFC3339, YYYY-MM-DD HH:MM:SS, YYYY-MM-DD or epoch ms); default now")
	return cmd
}

func newSubmissionsCmd(app *App) *cobra.Command {
	var kind, status string

	cmd := &cobra.Command{
		Use:   "submissions [MEMBER]",
		Short: "List a member's submissions, or every pending one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var subs []*domain.Submission
			var err error
			if len(args) == 0 {
				subs, err = app.Submissions.ListPending(ctx)
			} else {
				var m *domain.Member
				m, err = resolveMember(ctx, app, args[0])
				if err != nil {
					return err
				}
				subs, err = app.Submissions.ListByMember(ctx, m.ID, repository.SubmissionFilter{
					Kind:   domain.SubmissionKind(kind),
					Status: domain.SubmissionStatus(status),
				})
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmissionList(subs, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (routine, task)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, approve, reject, fail)")
	return cmd
}

func newReviewCmd(app *App) *cobra.Command {
	var status reviewStatusFlag

	cmd := &cobra.Command{
		Use:   "review SUBMISSION",
		Short: "Approve, reject or fail a pending submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSubmissionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sub, err := app.Submissions.Review(ctx, id, domain.SubmissionStatus(status.String()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.TruncID(sub.ID), sub.Kind, formatter.SubmissionStatusPill(sub.Status))
			return nil
		},
	}

	cmd.Flags().Var(&status, "status", "Outcome: approve, reject or fail")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
