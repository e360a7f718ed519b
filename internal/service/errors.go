package service

import (
	"errors"

	"github.com/qkariin/queendom/internal/domain"
)

var (
	// ErrKneelLocked is returned when a kneel is attempted during the cooldown.
	ErrKneelLocked = errors.New("kneeling is locked")

	// ErrAmbiguousMember is returned when a reference matches several members.
	ErrAmbiguousMember = errors.New("member reference is ambiguous")

	ErrAlreadyReviewed = domain.ErrAlreadyReviewed
	ErrUnknownReward   = domain.ErrUnknownReward
	ErrNothingToClaim  = domain.ErrNothingToClaim

	ErrInsufficientCoins = domain.ErrInsufficientCoins
	ErrTaskActive        = domain.ErrTaskActive
	ErrNoActiveTask      = domain.ErrNoActiveTask
	ErrNotAtonable       = domain.ErrNotAtonable
)
