package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
)

func newBuyCmd(app *App) *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "buy MEMBER [ITEM...]",
		Short: "Spend coins on an item; the cost counts towards sacrifice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if cost <= 0 {
				return fmt.Errorf("--cost must be positive")
			}
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			item := strings.Join(args[1:], " ")
			updated, err := app.Members.Purchase(ctx, m.ID, item, cost)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Spent %s coins (%s spent in total)\n",
				formatter.FormatCount(cost), formatter.FormatCount(updated.TotalSpent))
			fmt.Fprint(out, formatter.FormatBalance(updated))
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", 0, "Coins to spend")
	return cmd
}

func newPurchasesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purchases MEMBER",
		Short: "List a member's purchases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			purchases, err := app.Members.Purchases(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPurchaseList(purchases, app.now()))
			return nil
		},
	}
}
