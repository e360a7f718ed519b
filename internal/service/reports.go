package service

import (
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/streak"
)

// KneelStatus is the cooldown view of a member's kneeling.
type KneelStatus struct {
	MemberID      string  `json:"member_id"`
	Locked        bool    `json:"locked"`
	MinutesLeft   int     `json:"minutes_left"`
	Remaining     float64 `json:"remaining"`
	RewardPending bool    `json:"reward_pending"`
	KneelCount    int     `json:"kneel_count"`
	KneelHours    float64 `json:"kneel_hours"`
	DailyCode     string  `json:"daily_code"`
}

// StreakReport is the routine streak of one member.
type StreakReport struct {
	MemberID  string        `json:"member_id"`
	Routine   string        `json:"routine"`
	DutyDay   string        `json:"duty_day"`
	Current   streak.Result `json:"current"`
	Longest   int           `json:"longest"`
	DoneToday bool          `json:"done_today"`
}

// PromotionReport pairs the evaluator output with the member it describes.
type PromotionReport struct {
	Member        *domain.Member         `json:"-"`
	Streak        streak.Result          `json:"streak"`
	Status        domain.PromotionStatus `json:"status"`
	Qualified     int                    `json:"qualified_index"`
	QualifiedTier domain.RankTier        `json:"qualified_tier"`
	PreviousTier  string                 `json:"previous_tier,omitempty"`
	Promoted      bool                   `json:"promoted"`
}
