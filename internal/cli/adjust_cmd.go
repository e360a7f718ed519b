package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
)

// Default steps of the admin adjust buttons.
const (
	defaultCoinStep  = 100
	defaultKneelStep = 4
)

type adjustFunc func(ctx context.Context, id string, delta int) (*domain.Member, error)

// newAdjustCmd builds a counter command. --by sets a signed amount; without
// it the default step applies, negated by --remove. A zero default makes
// --by mandatory.
func newAdjustCmd(app *App, use, short string, step int, adjust adjustFunc) *cobra.Command {
	var by int
	var remove bool

	cmd := &cobra.Command{
		Use:   use + " MEMBER",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			delta := step
			if cmd.Flags().Changed("by") {
				delta = by
			} else if step == 0 {
				return fmt.Errorf("--by is required")
			}
			if remove && delta > 0 {
				delta = -delta
			}

			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := adjust(ctx, m.ID, delta)
			if errors.Is(err, domain.ErrInvalidAmount) {
				return fmt.Errorf("amount must be non-zero")
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBalance(updated))
			return nil
		},
	}

	cmd.Flags().IntVar(&by, "by", 0, "Signed amount to apply")
	cmd.Flags().BoolVar(&remove, "remove", false, "Subtract instead of add")
	return cmd
}

func newPointsCmd(app *App) *cobra.Command {
	return newAdjustCmd(app, "points", "Add or remove merit points", 0, app.Members.AdjustPoints)
}

func newCoinsCmd(app *App) *cobra.Command {
	return newAdjustCmd(app, "coins", fmt.Sprintf("Add or remove coins (default %d)", defaultCoinStep),
		defaultCoinStep, app.Members.AdjustCoins)
}

func newKneelsCmd(app *App) *cobra.Command {
	return newAdjustCmd(app, "kneels", fmt.Sprintf("Adjust the kneel counter (default %d, one hour)", defaultKneelStep),
		defaultKneelStep, app.Members.AdjustKneel)
}
