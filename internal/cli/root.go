package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/qkariin/queendom/internal/config"
	"github.com/qkariin/queendom/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and runtime settings used by CLI commands.
type App struct {
	Members     service.MemberService
	Submissions service.SubmissionService
	Kneel       service.KneelService
	Promotion   service.PromotionService
	Tasks       service.TaskService

	Config   config.Config
	Location *time.Location
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Interactive runs get
	// forms and the kneeling screen; nil means never interactive.
	IsInteractive func() bool

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	clock := a.Now
	if clock == nil {
		clock = time.Now
	}
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return clock().In(loc)
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// NewRootCmd creates the top-level "queendom" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "queendom",
		Short:         "Court ledger: members, routine streaks, kneeling and rank promotion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMemberCmd(app),
		newPointsCmd(app),
		newCoinsCmd(app),
		newKneelsCmd(app),
		newSubmitCmd(app),
		newSubmissionsCmd(app),
		newReviewCmd(app),
		newStreakCmd(app),
		newPromotionCmd(app),
		newPromoteCmd(app),
		newLadderCmd(app),
		newKneelCmd(app),
		newBuyCmd(app),
		newPurchasesCmd(app),
		newTaskCmd(app),
		newServeCmd(app),
	)

	return root
}
