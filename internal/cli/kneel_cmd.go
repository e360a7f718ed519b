package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/service"
)

func newKneelCmd(app *App) *cobra.Command {
	var reward string

	cmd := &cobra.Command{
		Use:   "kneel MEMBER",
		Short: "Kneel: hold space on a terminal, or record one kneel directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			status, err := app.Kneel.Status(ctx, m.ID)
			if err != nil {
				return err
			}
			if status.Locked {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKneelStatus(status))
				return fmt.Errorf("%d minutes left: %w", status.MinutesLeft, service.ErrKneelLocked)
			}

			if app.interactive() && reward == "" {
				model := newKneelModel(kneelModelConfig{
					Service:      app.Kneel,
					Member:       m,
					Status:       status,
					Hold:         app.Config.KneelHold(),
					RewardCoins:  app.Config.RewardCoins,
					RewardPoints: app.Config.RewardPoints,
					Now:          app.Now,
				})
				final, err := tea.NewProgram(model).Run()
				if err != nil {
					return err
				}
				if km, ok := final.(kneelModel); ok && km.err != nil {
					return km.err
				}
				return nil
			}

			updated, err := app.Kneel.Finish(ctx, m.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Kneel recorded for %s (%s kneels)\n", updated.DisplayName(), formatter.FormatCount(updated.KneelCount))
			if reward == "" {
				fmt.Fprintln(out, formatter.Dim("Reward waiting: run 'queendom kneel claim' to collect it."))
				return nil
			}
			return claimReward(cmd, app, updated, domain.RewardChoice(reward))
		},
	}

	cmd.Flags().StringVar(&reward, "reward", "", "Claim the reward right away (coins or points)")
	cmd.AddCommand(newKneelStatusCmd(app), newKneelClaimCmd(app))
	return cmd
}

func newKneelStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status MEMBER",
		Short: "Show the kneel cooldown and daily code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			status, err := app.Kneel.Status(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKneelStatus(status))
			return nil
		},
	}
}

func newKneelClaimCmd(app *App) *cobra.Command {
	var reward string

	cmd := &cobra.Command{
		Use:   "claim MEMBER",
		Short: "Claim the reward for the latest kneel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resolveMember(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			if reward == "" {
				if !app.interactive() {
					return fmt.Errorf("--reward is required (coins or points)")
				}
				if err := rewardForm(app.Config.RewardCoins, app.Config.RewardPoints, &reward).Run(); err != nil {
					return err
				}
			}
			return claimReward(cmd, app, m, domain.RewardChoice(reward))
		},
	}

	cmd.Flags().StringVar(&reward, "reward", "", "coins or points")
	return cmd
}

func claimReward(cmd *cobra.Command, app *App, m *domain.Member, choice domain.RewardChoice) error {
	updated, err := app.Kneel.ClaimReward(context.Background(), m.ID, choice)
	if errors.Is(err, service.ErrNothingToClaim) {
		return fmt.Errorf("%s has no unclaimed kneel reward", m.DisplayName())
	}
	if err != nil {
		return err
	}
	amount := app.Config.RewardCoins
	if choice == domain.RewardPoints {
		amount = app.Config.RewardPoints
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReward(updated, choice, amount))
	return nil
}
