package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/rank"
)

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members", "m"},
		Short:   "Manage members",
	}

	cmd.AddCommand(
		newMemberAddCmd(app),
		newMemberListCmd(app),
		newMemberShowCmd(app),
		newMemberEditCmd(app),
		newMemberTouchCmd(app),
		newMemberRemoveCmd(app),
	)

	return cmd
}

// bindMemberFlags registers the profile flags shared by add and edit.
func bindMemberFlags(cmd *cobra.Command, f *memberFields) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&f.Title, "title", "", "Honorific title")
	cmd.Flags().StringVar(&f.ProfilePicture, "photo", "", "Profile picture URL")
	cmd.Flags().StringVar(&f.Limits, "limits", "", "Disclosed limits")
	cmd.Flags().StringVar(&f.Kinks, "kinks", "", "Disclosed kinks")
	cmd.Flags().StringVar(&f.Routine, "routine", "", "Daily routine name")
	cmd.Flags().StringVar(&f.Hierarchy, "rank", "", "Rank (tier name)")
}

// canonicalTier maps a loosely typed tier name onto the ladder's spelling.
func canonicalTier(ladder domain.Ladder, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	idx := rank.IndexOf(ladder, name)
	if idx < 0 {
		return "", fmt.Errorf("unknown rank %q", name)
	}
	return ladder[idx].Name, nil
}

func newMemberAddCmd(app *App) *cobra.Command {
	var f memberFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new member",
		RunE: func(cmd *cobra.Command, args []string) error {
			ladder := app.Promotion.Ladder()
			if f.Name == "" && f.Title == "" {
				if !app.interactive() {
					return fmt.Errorf("--name or --title is required")
				}
				if err := memberForm(&f, ladder).Run(); err != nil {
					return err
				}
			}

			tier, err := canonicalTier(ladder, f.Hierarchy)
			if err != nil {
				return err
			}
			f.Hierarchy = tier

			m := &domain.Member{}
			f.applyTo(m)
			if err := app.Members.Create(context.Background(), m); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created member %s [%s] as %s\n", m.DisplayName(), m.ID[:8], m.Hierarchy)
			return nil
		},
	}

	bindMemberFlags(cmd, &f)
	return cmd
}

func newMemberListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Members.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMemberList(members, app.now()))
			return nil
		},
	}
}

func newMemberShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show MEMBER",
		Short: "Show a member profile and trophy case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resolveMember(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			ladder := app.Promotion.Ladder()
			current := rank.IndexOf(ladder, m.Hierarchy)
			if current < 0 {
				current = 0
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatMember(m, app.now()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Trophy case"))
			fmt.Fprint(out, formatter.FormatTrophyCase(ladder, current))
			return nil
		},
	}
}

func newMemberEditCmd(app *App) *cobra.Command {
	var f memberFields

	cmd := &cobra.Command{
		Use:   "edit MEMBER",
		Short: "Update a member profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			ladder := app.Promotion.Ladder()

			updated := fieldsOf(m)
			if cmd.Flags().NFlag() == 0 {
				if !app.interactive() {
					return fmt.Errorf("nothing to update: pass at least one flag")
				}
				if err := memberForm(&updated, ladder).Run(); err != nil {
					return err
				}
			} else {
				flags := cmd.Flags()
				set := func(name string, dst *string, v string) {
					if flags.Changed(name) {
						*dst = v
					}
				}
				set("name", &updated.Name, f.Name)
				set("title", &updated.Title, f.Title)
				set("photo", &updated.ProfilePicture, f.ProfilePicture)
				set("limits", &updated.Limits, f.Limits)
				set("kinks", &updated.Kinks, f.Kinks)
				set("routine", &updated.Routine, f.Routine)
				set("rank", &updated.Hierarchy, f.Hierarchy)
			}

			tier, err := canonicalTier(ladder, updated.Hierarchy)
			if err != nil {
				return err
			}
			updated.Hierarchy = tier
			updated.applyTo(m)

			if err := app.Members.Update(ctx, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated member %s\n", m.DisplayName())
			return nil
		},
	}

	bindMemberFlags(cmd, &f)
	return cmd
}

func newMemberTouchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "touch MEMBER",
		Short: "Mark a member as seen now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Members.Touch(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", m.DisplayName(), domain.PresenceOnline)
			return nil
		},
	}
}

func newMemberRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm MEMBER",
		Short: "Remove a member and their submissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, err := resolveMember(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to remove %s without --yes", m.DisplayName())
				}
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Remove %s?", m.DisplayName()), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Members.Delete(ctx, m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed member %s\n", m.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
