package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
)

type kneelService struct {
	members  repository.MemberRepo
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewKneelService(
	members repository.MemberRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) KneelService {
	return &kneelService{
		members:  members,
		uow:      uow,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *kneelService) Status(ctx context.Context, memberID string) (*KneelStatus, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return kneelStatus(m, s.settings.KneelCooldown, s.settings.now()), nil
}

// Finish counts one completed kneel and starts the cooldown.
func (s *kneelService) Finish(ctx context.Context, memberID string) (member *domain.Member, err error) {
	fields := map[string]any{"member_id": memberID}
	done := observe(ctx, s.observer, "kneel-finish", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		m, err := txMembers.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		now := s.settings.now()
		if st := kneelStatus(m, s.settings.KneelCooldown, now); st.Locked {
			return fmt.Errorf("%d minutes left: %w", st.MinutesLeft, ErrKneelLocked)
		}
		m.RecordKneel(now.UTC())
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}
		fields["kneel_count"] = m.KneelCount
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *kneelService) ClaimReward(ctx context.Context, memberID string, choice domain.RewardChoice) (member *domain.Member, err error) {
	done := observe(ctx, s.observer, "kneel-claim-reward", map[string]any{
		"member_id": memberID,
		"choice":    string(choice),
	})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		m, err := txMembers.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		if err := m.ClaimReward(choice, s.settings.RewardCoins, s.settings.RewardPoints, s.settings.now().UTC()); err != nil {
			return err
		}
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// kneelStatus derives the cooldown state. Remaining falls from 1 to 0 over
// the cooldown window; MinutesLeft rounds up.
func kneelStatus(m *domain.Member, cooldown time.Duration, now time.Time) *KneelStatus {
	st := &KneelStatus{
		MemberID:      m.ID,
		RewardPending: m.RewardPending(),
		KneelCount:    domain.NonNegative(m.KneelCount),
		KneelHours:    m.KneelHours(),
		DailyCode:     DailyCode(now),
	}
	if m.LastKneelAt == nil || cooldown <= 0 {
		return st
	}
	elapsed := now.Sub(*m.LastKneelAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= cooldown {
		return st
	}
	left := cooldown - elapsed
	st.Locked = true
	st.MinutesLeft = int(math.Ceil(left.Minutes()))
	st.Remaining = float64(left) / float64(cooldown)
	return st
}

// DailyCode is the four-digit code shown on the kneeling card, derived from
// the calendar date so it changes every day.
func DailyCode(t time.Time) string {
	code := (110-int(t.Month()))*100 + (82 - t.Day())
	return fmt.Sprintf("%04d", code)
}
