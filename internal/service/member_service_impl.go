package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
)

// defaultPurchaseItem names a purchase made without an item.
const defaultPurchaseItem = "Tribute"

type memberService struct {
	members   repository.MemberRepo
	purchases repository.PurchaseRepo
	uow       db.UnitOfWork
	settings  Settings
	observer  UseCaseObserver
}

func NewMemberService(
	members repository.MemberRepo,
	purchases repository.PurchaseRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) MemberService {
	return &memberService{
		members:   members,
		purchases: purchases,
		uow:       uow,
		settings:  settings,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *memberService) Create(ctx context.Context, m *domain.Member) (err error) {
	done := observe(ctx, s.observer, "member-create", map[string]any{"name": m.Name})
	defer func() { done(err) }()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := s.settings.now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.JoinedAt.IsZero() {
		m.JoinedAt = now
	}
	if strings.TrimSpace(m.Hierarchy) == "" {
		m.Hierarchy = s.settings.ladder()[0].Name
	}
	m.KneelCount = domain.NonNegative(m.KneelCount)
	return s.members.Create(ctx, m)
}

func (s *memberService) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	return s.members.GetByID(ctx, id)
}

func (s *memberService) Resolve(ctx context.Context, ref string) (*domain.Member, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("member reference is empty: %w", repository.ErrNotFound)
	}

	m, err := s.members.GetByID(ctx, ref)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	byName, err := s.members.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if match, err := single(ref, byName); match != nil || err != nil {
		return match, err
	}

	byPrefix, err := s.members.FindByIDPrefix(ctx, strings.ToLower(ref))
	if err != nil {
		return nil, err
	}
	if match, err := single(ref, byPrefix); match != nil || err != nil {
		return match, err
	}
	return nil, fmt.Errorf("member %q: %w", ref, repository.ErrNotFound)
}

// single returns the only match, nil when there is none, or
// ErrAmbiguousMember when there are several.
func single(ref string, matches []*domain.Member) (*domain.Member, error) {
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d members: %w", ref, len(matches), ErrAmbiguousMember)
	}
}

func (s *memberService) List(ctx context.Context) ([]*domain.Member, error) {
	return s.members.List(ctx)
}

func (s *memberService) Update(ctx context.Context, m *domain.Member) error {
	m.UpdatedAt = s.settings.now().UTC()
	return s.members.Update(ctx, m)
}

func (s *memberService) Delete(ctx context.Context, id string) (err error) {
	done := observe(ctx, s.observer, "member-delete", map[string]any{"member_id": id})
	defer func() { done(err) }()

	return s.members.Delete(ctx, id)
}

func (s *memberService) AdjustPoints(ctx context.Context, id string, delta int) (*domain.Member, error) {
	return s.adjust(ctx, "adjust-points", id, delta, (*domain.Member).AdjustPoints)
}

func (s *memberService) AdjustCoins(ctx context.Context, id string, delta int) (*domain.Member, error) {
	return s.adjust(ctx, "adjust-coins", id, delta, (*domain.Member).AdjustCoins)
}

func (s *memberService) AdjustKneel(ctx context.Context, id string, delta int) (*domain.Member, error) {
	return s.adjust(ctx, "adjust-kneel", id, delta, (*domain.Member).AdjustKneel)
}

// adjust runs a read-modify-write of one counter inside a transaction.
func (s *memberService) adjust(
	ctx context.Context,
	name, id string,
	delta int,
	apply func(*domain.Member, int, time.Time) error,
) (member *domain.Member, err error) {
	done := observe(ctx, s.observer, name, map[string]any{"member_id": id, "delta": delta})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		m, err := txMembers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(m, delta, s.settings.now().UTC()); err != nil {
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

func (s *memberService) Touch(ctx context.Context, id string) error {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := s.settings.now().UTC()
	m.LastSeenAt = &now
	m.UpdatedAt = now
	return s.members.Update(ctx, m)
}

func (s *memberService) Purchase(ctx context.Context, id, item string, cost int) (member *domain.Member, err error) {
	item = domain.CoalesceStr(strings.TrimSpace(item), defaultPurchaseItem)
	done := observe(ctx, s.observer, "member-purchase", map[string]any{
		"member_id": id,
		"item":      item,
		"cost":      cost,
	})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		m, err := txMembers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := spend(ctx, tx, m, item, cost, s.settings.now().UTC()); err != nil {
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

func (s *memberService) Purchases(ctx context.Context, id string) ([]*domain.Purchase, error) {
	return s.purchases.ListByMember(ctx, id)
}

// spend debits m and records the purchase on tx. The caller saves m.
func spend(ctx context.Context, tx db.DBTX, m *domain.Member, item string, cost int, now time.Time) error {
	if err := m.Spend(cost, now); err != nil {
		return err
	}
	return repository.NewSQLitePurchaseRepo(tx).Create(ctx, &domain.Purchase{
		ID:        uuid.New().String(),
		MemberID:  m.ID,
		Item:      item,
		Cost:      cost,
		CreatedAt: now,
	})
}
