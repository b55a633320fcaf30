package scoring

import "fmt"

// Mode selects how a game is played.
type Mode string

const (
	// ModePractice keeps running counters and reveals answers on a miss.
	ModePractice  Mode = "practice"
	ModeQuiz      Mode = "quiz"
	ModeChallenge Mode = "challenge"
)

// AllModes returns the modes in menu order.
func AllModes() []Mode {
	return []Mode{ModePractice, ModeQuiz, ModeChallenge}
}

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModePractice:
		return "Practice"
	case ModeQuiz:
		return "Quiz"
	case ModeChallenge:
		return "Challenge"
	default:
		return string(m)
	}
}

// RevealsAnswer reports whether a wrong answer shows the correct one.
func (m Mode) RevealsAnswer() bool {
	return m == ModePractice
}

// ParseMode converts a name to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range AllModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// StartGame begins a game in mode m. Quiz and challenge games start with
// fresh answer counters and count as a played session. Best streak,
// mastered tables and perfect rounds always carry over.
func (s *Stats) StartGame(m Mode) {
	s.Round.Reset()
	if m == ModePractice {
		return
	}
	s.Correct = 0
	s.Incorrect = 0
	s.Streak = 0
	s.SessionsPlayed++
}
