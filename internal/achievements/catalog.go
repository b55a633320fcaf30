package achievements

import (
	"fmt"

	"github.com/abhisek/brickmath/internal/scoring"
)

// State is the player state rules are evaluated against.
type State struct {
	Stats *scoring.Stats

	// PerfectRound is true only when the submission being evaluated just
	// completed a round with no misses.
	PerfectRound bool

	TotalBricks     int
	CompletedBuilds int
}

// Rule declares one achievement. Progress computes the raw progress for a
// state; the engine caps it at MaxProgress.
type Rule struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Reward      int // large bricks minted on unlock
	MaxProgress int
	Progress    func(State) int
}

// Catalog returns every achievement rule in display order.
func Catalog() []Rule {
	rules := []Rule{
		{
			ID:          "first_correct",
			Name:        "First Success",
			Description: "Answer your first question correctly",
			Icon:        "🎯",
			Reward:      1,
			MaxProgress: 1,
			Progress:    func(s State) int { return s.Stats.Correct },
		},
		{
			ID:          "streak_5",
			Name:        "Hot Streak",
			Description: "Get 5 answers correct in a row",
			Icon:        "🔥",
			Reward:      3,
			MaxProgress: 5,
			Progress:    func(s State) int { return s.Stats.Streak },
		},
		{
			ID:          "streak_10",
			Name:        "Super Streak",
			Description: "Get 10 answers correct in a row",
			Icon:        "⚡",
			Reward:      5,
			MaxProgress: 10,
			Progress:    func(s State) int { return s.Stats.Streak },
		},
		{
			ID:          "perfect_round",
			Name:        "Perfect Round",
			Description: fmt.Sprintf("Answer %d questions with no mistakes", scoring.RoundSize),
			Icon:        "💎",
			Reward:      4,
			MaxProgress: scoring.RoundSize,
			Progress: func(s State) int {
				if s.PerfectRound {
					return scoring.RoundSize
				}
				return 0
			},
		},
	}

	for _, n := range []int{2, 5, 10} {
		rules = append(rules, tableMaster(n))
	}

	return append(rules,
		Rule{
			ID:          "speed_demon",
			Name:        "Speed Demon",
			Description: "Answer 50 questions correctly",
			Icon:        "🚀",
			Reward:      6,
			MaxProgress: 50,
			Progress:    func(s State) int { return s.Stats.Correct },
		},
		Rule{
			ID:          "brick_collector",
			Name:        "Brick Collector",
			Description: "Collect 25 bricks",
			Icon:        "🧱",
			Reward:      3,
			MaxProgress: 25,
			Progress:    func(s State) int { return s.TotalBricks },
		},
		Rule{
			ID:          "math_champion",
			Name:        "Math Champion",
			Description: "Answer 100 questions correctly",
			Icon:        "👑",
			Reward:      10,
			MaxProgress: 100,
			Progress:    func(s State) int { return s.Stats.Correct },
		},
		Rule{
			ID:          "master_builder",
			Name:        "Master Builder",
			Description: "Complete 5 building projects",
			Icon:        "🏗️",
			Reward:      8,
			MaxProgress: 5,
			Progress:    func(s State) int { return s.CompletedBuilds },
		},
	)
}

// tableMaster builds the rule for mastering the n times table.
func tableMaster(n int) Rule {
	const maxProgress = 12
	return Rule{
		ID:          fmt.Sprintf("table_master_%d", n),
		Name:        fmt.Sprintf("%d Times Master", n),
		Description: fmt.Sprintf("Master the %d times table", n),
		Icon:        "🏆",
		Reward:      2,
		MaxProgress: maxProgress,
		Progress: func(s State) int {
			if s.Stats.Mastered(n) {
				return maxProgress
			}
			return 0
		},
	}
}
