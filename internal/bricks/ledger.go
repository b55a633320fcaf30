package bricks

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/brickmath/internal/store"
)

// ErrInsufficientBricks is matched by every InsufficientBricksError.
var ErrInsufficientBricks = errors.New("insufficient bricks")

// InsufficientBricksError reports a spend larger than the ledger holds.
type InsufficientBricksError struct {
	Need int
	Have int
}

func (e *InsufficientBricksError) Error() string {
	return fmt.Sprintf("You need %d bricks to build this! You have %d bricks.", e.Need, e.Have)
}

// Is lets errors.Is match ErrInsufficientBricks.
func (e *InsufficientBricksError) Is(target error) bool {
	return target == ErrInsufficientBricks
}

// Brick is one earned brick.
type Brick struct {
	ID        string
	Color     Color
	Size      Size
	Reason    string // e.g. "Correct: 7 × 8"
	Timestamp time.Time
}

// Ledger is the ordered list of unspent bricks, oldest first.
// It is not safe for concurrent use; the game session serializes access.
type Ledger struct {
	bricks []Brick
	rng    *rand.Rand
	now    func() time.Time
	newID  func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRand sets the random source used to pick colors.
func WithRand(src rand.Source) Option {
	return func(l *Ledger) { l.rng = rand.New(src) }
}

// WithClock sets the clock used to timestamp bricks.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger restores a ledger from persisted entries. Entries with an
// unknown size are kept as normal bricks.
func NewLedger(data []store.BrickData, opts ...Option) *Ledger {
	l := &Ledger{
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:   time.Now,
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(l)
	}

	l.bricks = make([]Brick, 0, len(data))
	for _, d := range data {
		size := Size(d.Size)
		if !size.Valid() {
			size = SizeNormal
		}
		l.bricks = append(l.bricks, Brick{
			ID:        d.ID,
			Color:     Color(d.Color),
			Size:      size,
			Reason:    d.EarnedFor,
			Timestamp: d.Timestamp,
		})
	}
	return l
}

// Mint appends one brick with a random palette color.
func (l *Ledger) Mint(reason string, size Size) Brick {
	palette := Palette()
	b := Brick{
		ID:        l.newID(),
		Color:     palette[l.rng.IntN(len(palette))],
		Size:      size,
		Reason:    reason,
		Timestamp: l.now(),
	}
	l.bricks = append(l.bricks, b)
	return b
}

// MintN appends n bricks at once and returns them. n <= 0 mints nothing.
func (l *Ledger) MintN(n int, reason string, size Size) []Brick {
	if n <= 0 {
		return nil
	}
	minted := make([]Brick, 0, n)
	for range n {
		minted = append(minted, l.Mint(reason, size))
	}
	return minted
}

// Spend removes the n most recently minted bricks. The ledger is left
// untouched when it holds fewer than n.
func (l *Ledger) Spend(n int) error {
	if n < 0 {
		return fmt.Errorf("spend %d bricks: negative amount", n)
	}
	if n > len(l.bricks) {
		return &InsufficientBricksError{Need: n, Have: len(l.bricks)}
	}
	clear(l.bricks[len(l.bricks)-n:])
	l.bricks = l.bricks[:len(l.bricks)-n]
	return nil
}

// Total returns the number of unspent bricks.
func (l *Ledger) Total() int {
	return len(l.bricks)
}

// Bricks returns a copy of the ledger, oldest first.
func (l *Ledger) Bricks() []Brick {
	out := make([]Brick, len(l.bricks))
	copy(out, l.bricks)
	return out
}

// CountBySize tallies unspent bricks per size.
func (l *Ledger) CountBySize() map[Size]int {
	counts := make(map[Size]int, len(AllSizes()))
	for _, b := range l.bricks {
		counts[b.Size]++
	}
	return counts
}

// CountByColor tallies unspent bricks per color.
func (l *Ledger) CountByColor() map[Color]int {
	counts := make(map[Color]int)
	for _, b := range l.bricks {
		counts[b.Color]++
	}
	return counts
}

// Reset empties the ledger.
func (l *Ledger) Reset() {
	l.bricks = nil
}

// SnapshotData builds the brick records for persistence.
func (l *Ledger) SnapshotData() []store.BrickData {
	out := make([]store.BrickData, len(l.bricks))
	for i, b := range l.bricks {
		out[i] = store.BrickData{
			ID:        b.ID,
			Color:     string(b.Color),
			Size:      string(b.Size),
			EarnedFor: b.Reason,
			Timestamp: b.Timestamp,
		}
	}
	return out
}
