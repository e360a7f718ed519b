package domain

type SubmissionKind string

const (
	SubmissionRoutine SubmissionKind = "routine"
	SubmissionTask    SubmissionKind = "task"
)

// ValidSubmissionKinds is the canonical set of accepted submission kind strings.
var ValidSubmissionKinds = map[string]bool{
	"routine": true, "task": true,
}

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approve"
	SubmissionRejected SubmissionStatus = "reject"
	SubmissionFailed   SubmissionStatus = "fail"
)

// ValidReviewStatuses are the statuses a pending submission may move to.
var ValidReviewStatuses = map[string]bool{
	"approve": true, "reject": true, "fail": true,
}

// RequirementKind names a numeric promotion threshold.
type RequirementKind string

const (
	RequireTasks  RequirementKind = "tasks"
	RequireKneels RequirementKind = "kneels"
	RequirePoints RequirementKind = "points"
	RequireSpent  RequirementKind = "spent"
	RequireStreak RequirementKind = "streak"
)

// Label returns the display label used on progress bars.
func (k RequirementKind) Label() string {
	switch k {
	case RequireTasks:
		return "LABOR"
	case RequireKneels:
		return "ENDURANCE"
	case RequirePoints:
		return "MERIT"
	case RequireSpent:
		return "SACRIFICE"
	case RequireStreak:
		return "CONSISTENCY"
	default:
		return string(k)
	}
}

// GateKind names a boolean promotion gate.
type GateKind string

const (
	GateIdentity GateKind = "identity"
	GatePhoto    GateKind = "photo"
	GateLimits   GateKind = "limits"
	GateKinks    GateKind = "kinks"
)

func (g GateKind) Label() string {
	switch g {
	case GateIdentity:
		return "IDENTITY"
	case GatePhoto:
		return "PHOTO"
	case GateLimits:
		return "LIMITS"
	case GateKinks:
		return "KINKS"
	default:
		return string(g)
	}
}

type RewardChoice string

const (
	RewardCoins  RewardChoice = "coins"
	RewardPoints RewardChoice = "points"
)

type Presence string

const (
	PresenceOnline  Presence = "ONLINE"
	PresenceOffline Presence = "OFFLINE"
)
