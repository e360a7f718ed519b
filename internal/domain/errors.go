package domain

import "errors"

var (
	// ErrInvalidAmount is returned when an adjustment amount is zero.
	ErrInvalidAmount = errors.New("amount must be non-zero")

	// ErrAlreadyReviewed is returned when a submission has left the pending state.
	ErrAlreadyReviewed = errors.New("already reviewed")

	ErrUnknownReward  = errors.New("unknown reward choice")
	ErrNothingToClaim = errors.New("no kneel reward to claim")

	// ErrInsufficientCoins is returned when a balance cannot cover a cost.
	ErrInsufficientCoins = errors.New("insufficient coins")

	ErrTaskActive   = errors.New("a task is already active")
	ErrNoActiveTask = errors.New("no active task")
	ErrNotAtonable  = errors.New("task cannot be atoned")
	ErrEmptyTask    = errors.New("task text is empty")
)
