// Package app wires configuration, storage and use cases together. Both the
// CLI and the HTTP bridge are built on the Services it returns.
package app

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/qkariin/queendom/internal/config"
	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/rank"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/service"
)

// Services are the use cases served to the CLI and the bridge.
type Services struct {
	Members     service.MemberService
	Submissions service.SubmissionService
	Kneel       service.KneelService
	Promotion   service.PromotionService
	Tasks       service.TaskService
}

// NewServices builds every use case on one database handle.
func NewServices(database *sql.DB, settings service.Settings, observers ...service.UseCaseObserver) Services {
	members := repository.NewSQLiteMemberRepo(database)
	submissions := repository.NewSQLiteSubmissionRepo(database)
	purchases := repository.NewSQLitePurchaseRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	queue := repository.NewSQLiteQueueRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	return Services{
		Members:     service.NewMemberService(members, purchases, uow, settings, observers...),
		Submissions: service.NewSubmissionService(submissions, uow, settings, observers...),
		Kneel:       service.NewKneelService(members, uow, settings, observers...),
		Promotion:   service.NewPromotionService(members, submissions, uow, settings, observers...),
		Tasks:       service.NewTaskService(tasks, queue, uow, settings, observers...),
	}
}

// Settings derives the service tunables from cfg, loading the ladder file
// when one is configured.
func Settings(cfg config.Config) (service.Settings, error) {
	settings := service.DefaultSettings()

	loc, err := cfg.Location()
	if err != nil {
		return service.Settings{}, err
	}
	settings.Location = loc
	settings.KneelCooldown = cfg.KneelCooldown()
	settings.RewardCoins = cfg.RewardCoins
	settings.RewardPoints = cfg.RewardPoints
	settings.TaskPool = cfg.TaskPool

	if cfg.LadderPath != "" {
		ladder, err := rank.LoadLadder(cfg.LadderPath)
		if err != nil {
			return service.Settings{}, err
		}
		settings.Ladder = ladder
	}
	return settings, nil
}

// Runtime is an opened database plus the services on top of it.
type Runtime struct {
	Services
	DB       *sql.DB
	Settings service.Settings
}

// Open opens the configured database and wires the services. now overrides
// the clock when non-nil. Callers must Close the runtime.
func Open(cfg config.Config, now func() time.Time, observers ...service.UseCaseObserver) (*Runtime, error) {
	settings, err := Settings(cfg)
	if err != nil {
		return nil, err
	}
	settings.Now = now

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &Runtime{
		Services: NewServices(database, settings, observers...),
		DB:       database,
		Settings: settings,
	}, nil
}

func (r *Runtime) Close() error {
	return r.DB.Close()
}
