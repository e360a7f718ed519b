package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/rank"
)

func newStreakCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streak MEMBER",
		Short: "Show a member's routine streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Promotion.Streak(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStreak(report))
			return nil
		},
	}
}

func newPromotionCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "promotion MEMBER",
		Aliases: []string{"status"},
		Short:   "Show progress toward the next rank",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Promotion.GetPromotion(ctx, m.ID)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPromotion(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw status as JSON")
	return cmd
}

func newPromoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "promote MEMBER",
		Short: "Raise the stored rank to the highest tier the member qualifies for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Promotion.Promote(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPromoted(report))
			return nil
		},
	}
}

func newLadderCmd(app *App) *cobra.Command {
	var member, tier string

	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Show the rank ladder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ladder := app.Promotion.Ladder()
			out := cmd.OutOrStdout()

			if tier != "" {
				idx := rank.IndexOf(ladder, tier)
				if idx < 0 {
					return fmt.Errorf("unknown rank %q", tier)
				}
				fmt.Fprint(out, formatter.FormatTier(ladder[idx]))
				return nil
			}

			current := -1
			if member != "" {
				m, err := resolveMember(context.Background(), app, member)
				if err != nil {
					return err
				}
				current = rank.IndexOf(ladder, m.Hierarchy)
				if current < 0 {
					current = 0
				}
			}
			fmt.Fprint(out, formatter.FormatLadder(ladder, current))
			return nil
		},
	}

	cmd.Flags().StringVar(&member, "member", "", "Mark this member's rank")
	cmd.Flags().StringVar(&tier, "tier", "", "Show one tier with its benefits")
	return cmd
}
