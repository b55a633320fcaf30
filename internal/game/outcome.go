package game

import (
	"github.com/abhisek/brickmath/internal/achievements"
	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/builder"
	"github.com/abhisek/brickmath/internal/problemgen"
)

// Outcome reports everything a submitted answer changed.
type Outcome struct {
	Question problemgen.Question
	Correct  bool

	// Brick is the brick minted for a correct answer, nil otherwise.
	Brick *bricks.Brick

	// NewlyMastered is the table mastered by this answer, or 0.
	NewlyMastered int

	RoundComplete bool
	PerfectRound  bool

	// Unlocked lists achievements unlocked by this answer, including any
	// unlocked by reward bricks.
	Unlocked []achievements.Achievement

	// RewardBricks is the number of large bricks minted for Unlocked.
	RewardBricks int
}

// BricksEarned returns every brick the answer added to the ledger.
func (o Outcome) BricksEarned() int {
	n := o.RewardBricks
	if o.Brick != nil {
		n++
	}
	return n
}

// BuildResult reports a completed build.
type BuildResult struct {
	Model builder.Model
	Build builder.CompletedBuild

	// Bonus holds the large bricks minted as the building bonus.
	Bonus []bricks.Brick

	Unlocked     []achievements.Achievement
	RewardBricks int
}
