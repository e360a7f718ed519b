package rank

import "github.com/qkariin/queendom/internal/domain"

var defaultLadder = domain.Ladder{
	{
		Name: "HALL BOY", Icon: "🧹", SpeakCost: 20,
		Benefits: []string{
			"Identity: You are granted a Name.",
			"Labor: Permission to begin Basic Tasks.",
			"Speak Cost: 20 Coins.",
		},
	},
	{
		Name: "FOOTMAN", Icon: "👞", SpeakCost: 15,
		Requirements: domain.Requirements{
			TasksCompleted: 5, KneelCount: 10, Points: 500,
			RequiresDisplayName: true, RequiresPhoto: true,
		},
		Benefits: []string{
			"Presence: Your Face may be revealed.",
			"Order: Access to the Daily Routine.",
			"Speak Cost: 15 Coins.",
		},
	},
	{
		Name: "SILVERMAN", Icon: "🥈", SpeakCost: 10,
		Requirements: domain.Requirements{
			TasksCompleted: 25, KneelCount: 65, Points: 2500, TotalSpent: 5000, StreakDays: 5,
			RequiresLimitsDisclosed: true, RequiresKinksDisclosed: true,
		},
		Benefits: []string{
			"Chat Upgrade: Permission to send Photos.",
			"Devotion: Tasks tailored to your Desires.",
			"Booking: Permission to request Sessions.",
			"Speak Cost: 10 Coins.",
		},
	},
	{
		Name: "BUTLER", Icon: "🤵", SpeakCost: 5,
		Requirements: domain.Requirements{
			TasksCompleted: 100, KneelCount: 250, Points: 10000, TotalSpent: 10000, StreakDays: 10,
		},
		Benefits: []string{
			"Chat Upgrade: Permission to send Videos.",
			"Voice: Access to Audio Sessions.",
			"Speak Cost: 5 Coins.",
		},
	},
	{
		Name: "CHAMBERLAIN", Icon: "🗝️",
		Requirements: domain.Requirements{
			TasksCompleted: 300, KneelCount: 750, Points: 50000, TotalSpent: 50000, StreakDays: 30,
		},
		Benefits: []string{
			"Speech: All messaging is Free.",
			"Visuals: Access to Video Sessions.",
			"Honor: Access to Elite Trials.",
		},
	},
	{
		Name: "SECRETARY", Icon: "💼",
		Requirements: domain.Requirements{
			TasksCompleted: 500, KneelCount: 1500, Points: 100000, TotalSpent: 100000, StreakDays: 100,
		},
		Benefits: []string{
			"The Line: A direct Audio Connection.",
			"Authority: Access to System Commands.",
			"The Throne: Total, Unfiltered Access.",
		},
	},
	{
		Name: "QUEEN'S CHAMPION", Icon: "👑",
		Requirements: domain.Requirements{
			TasksCompleted: 1000, KneelCount: 3000, Points: 250000, TotalSpent: 1000000, StreakDays: 365,
		},
		Benefits: []string{
			"Absolute Authority.",
			"Manifest Will.",
			"Total Ownership.",
		},
	},
}

// DefaultLadder returns a fresh copy of the built-in seven-tier ladder.
func DefaultLadder() domain.Ladder {
	return defaultLadder.Clone()
}
