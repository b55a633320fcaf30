package scoring

// RoundSize is the number of submissions in a round.
const RoundSize = 10

// Round counts submissions in the current window of RoundSize.
type Round struct {
	Answered int
	Correct  int
}

// Complete reports whether the round has reached RoundSize submissions.
func (r Round) Complete() bool {
	return r.Answered >= RoundSize
}

// Perfect reports whether the round is complete with no misses.
func (r Round) Perfect() bool {
	return r.Complete() && r.Correct == RoundSize
}

// Reset starts a new round.
func (r *Round) Reset() {
	*r = Round{}
}

// record counts one submission. A completed round is kept until the next
// submission so callers can still inspect it.
func (r *Round) record(correct bool) (complete, perfect bool) {
	if r.Complete() {
		r.Reset()
	}
	r.Answered++
	if correct {
		r.Correct++
	}
	return r.Complete(), r.Perfect()
}
