package service

import (
	"context"
	"time"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/rank"
	"github.com/qkariin/queendom/internal/repository"
	"github.com/qkariin/queendom/internal/streak"
)

type promotionService struct {
	members     repository.MemberRepo
	submissions repository.SubmissionRepo
	uow         db.UnitOfWork
	settings    Settings
	observer    UseCaseObserver
}

func NewPromotionService(
	members repository.MemberRepo,
	submissions repository.SubmissionRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) PromotionService {
	return &promotionService{
		members:     members,
		submissions: submissions,
		uow:         uow,
		settings:    settings,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *promotionService) Ladder() domain.Ladder {
	return s.settings.ladder().Clone()
}

func (s *promotionService) Streak(ctx context.Context, memberID string) (*StreakReport, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	events, err := routineEvents(ctx, s.submissions, memberID)
	if err != nil {
		return nil, err
	}
	now := s.settings.now()
	return &StreakReport{
		MemberID:  m.ID,
		Routine:   m.Routine,
		DutyDay:   streak.DutyDay(now),
		Current:   streak.Resolve(events, now, m.RoutineStreak),
		Longest:   streak.Longest(events, now.Location()),
		DoneToday: streak.DoneToday(events, now),
	}, nil
}

func (s *promotionService) GetPromotion(ctx context.Context, memberID string) (report *PromotionReport, err error) {
	fields := map[string]any{"member_id": memberID}
	done := observe(ctx, s.observer, "promotion-status", fields)
	defer func() { done(err) }()

	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	events, err := routineEvents(ctx, s.submissions, memberID)
	if err != nil {
		return nil, err
	}
	report = s.evaluate(m, events, s.settings.now())
	fields["tier"] = report.Status.CurrentTier.Name
	fields["streak"] = report.Streak.Days
	return report, nil
}

// Promote moves the stored tier up to the highest tier the member qualifies
// for. It never demotes. When the member has routine history, the stored
// streak counter is refreshed from the computed value in the same transaction.
func (s *promotionService) Promote(ctx context.Context, memberID string) (report *PromotionReport, err error) {
	fields := map[string]any{"member_id": memberID}
	done := observe(ctx, s.observer, "promote", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		m, err := txMembers.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		events, err := routineEvents(ctx, repository.NewSQLiteSubmissionRepo(tx), memberID)
		if err != nil {
			return err
		}

		now := s.settings.now()
		ladder := s.settings.ladder()
		computed := streak.Compute(events, now)
		qualified := rank.Qualify(ladder, m.Snapshot(computed))
		current := rank.IndexOf(ladder, m.Hierarchy)

		previous := m.Hierarchy
		promoted := qualified > current && qualified >= 0
		if promoted {
			m.Hierarchy = ladder[qualified].Name
		}
		// Only a readable history may overwrite the stored counter; without
		// one the counter is the fallback Resolve reads.
		if resolved := streak.Resolve(events, now, m.RoutineStreak); resolved.Source == streak.SourceComputed {
			m.RoutineStreak = resolved.Days
		}
		m.UpdatedAt = now.UTC()
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}

		report = s.evaluate(m, events, now)
		report.Promoted = promoted && previous != m.Hierarchy
		report.PreviousTier = previous
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["tier"] = report.Member.Hierarchy
	fields["promoted"] = report.Promoted
	return report, nil
}

// evaluate runs the rank evaluator against the computed streak; the stored
// counter only feeds the displayed value.
func (s *promotionService) evaluate(m *domain.Member, events []streak.Event, now time.Time) *PromotionReport {
	ladder := s.settings.ladder()
	stats := m.Snapshot(streak.Compute(events, now))
	qualified := rank.Qualify(ladder, stats)

	report := &PromotionReport{
		Member:    m,
		Streak:    streak.Resolve(events, now, m.RoutineStreak),
		Status:    rank.Evaluate(ladder, stats),
		Qualified: qualified,
	}
	if qualified >= 0 {
		report.QualifiedTier = ladder[qualified]
	}
	return report
}

// routineEvents loads the routine proofs that count toward the streak:
// pending and approved ones. Rejected and failed proofs do not count.
func routineEvents(ctx context.Context, subs repository.SubmissionRepo, memberID string) ([]streak.Event, error) {
	list, err := subs.ListByMember(ctx, memberID, repository.SubmissionFilter{Kind: domain.SubmissionRoutine})
	if err != nil {
		return nil, err
	}
	events := make([]streak.Event, 0, len(list))
	for _, sub := range list {
		if sub.Status == domain.SubmissionRejected || sub.Status == domain.SubmissionFailed {
			continue
		}
		events = append(events, streak.At(sub.SubmittedAt))
	}
	return events, nil
}
