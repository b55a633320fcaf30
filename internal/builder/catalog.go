package builder

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/abhisek/brickmath/internal/bricks"
)

// ErrUnknownModel is returned when a model id is not in the catalog.
var ErrUnknownModel = errors.New("unknown model")

// BonusPercent is the share of a model's cost returned as bonus bricks.
const BonusPercent = 20

// Difficulty ranks how hard a model is to build.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// AllDifficulties returns difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// DisplayName returns a human-readable label for the difficulty.
func (d Difficulty) DisplayName() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// Cell is one brick of a model's picture.
type Cell struct {
	Color string // hex
	Size  bricks.Size
}

// Model is a buildable model.
type Model struct {
	ID          string
	Name        string
	Cost        int
	Difficulty  Difficulty
	Description string
	Icon        string

	// Pattern is the model's picture, top row first.
	Pattern [][]Cell
}

// Bonus returns the bonus bricks awarded for building m.
func (m Model) Bonus() int {
	return Bonus(m.Cost)
}

// Bonus returns floor(cost × 20%).
func Bonus(cost int) int {
	if cost <= 0 {
		return 0
	}
	return cost * BonusPercent / 100
}

const (
	red    = "#EF4444"
	blue   = "#3B82F6"
	yellow = "#EAB308"
	green  = "#22C55E"
	orange = "#F97316"
	gray   = "#6B7280"
	dark   = "#1F2937"
	white  = "#F8FAFC"
	brown  = "#92400E"
)

func n(c string) Cell { return Cell{Color: c, Size: bricks.SizeNormal} }
func s(c string) Cell { return Cell{Color: c, Size: bricks.SizeSmall} }
func l(c string) Cell { return Cell{Color: c, Size: bricks.SizeLarge} }

var catalog = []Model{
	{
		ID: "house", Name: "Cozy House", Cost: 15, Difficulty: Easy, Icon: "🏠",
		Description: "Build a simple house with a roof and door",
		Pattern: [][]Cell{
			{n(red), n(red), n(red)},
			{n(yellow), s(blue), n(yellow)},
			{n(yellow), n(green), n(yellow)},
			{l(yellow), l(yellow), l(yellow)},
		},
	},
	{
		ID: "car", Name: "Race Car", Cost: 12, Difficulty: Easy, Icon: "🏎️",
		Description: "Build a speedy race car",
		Pattern: [][]Cell{
			{n(red), n(red), n(red)},
			{s(blue), l(red), s(blue)},
			{s(dark), n(red), s(dark)},
		},
	},
	{
		ID: "rocket", Name: "Space Rocket", Cost: 20, Difficulty: Medium, Icon: "🚀",
		Description: "Build a rocket to explore space",
		Pattern: [][]Cell{
			{s(red)},
			{n(white)},
			{n(white)},
			{l(blue)},
			{l(blue)},
			{n(orange), n(orange)},
		},
	},
	{
		ID: "castle", Name: "Magic Castle", Cost: 35, Difficulty: Hard, Icon: "🏰",
		Description: "Build a magnificent castle with towers",
		Pattern: [][]Cell{
			{s(blue), s(gray), s(gray), s(blue)},
			{n(gray), s(yellow), s(yellow), n(gray)},
			{n(gray), n(brown), n(brown), n(gray)},
			{l(gray), l(gray), l(gray), l(gray)},
		},
	},
	{
		ID: "plane", Name: "Airplane", Cost: 18, Difficulty: Medium, Icon: "✈️",
		Description: "Build an airplane ready for takeoff",
		Pattern: [][]Cell{
			{n(blue), n(blue), n(blue)},
			{l(white), l(blue), l(white)},
			{n(blue), n(blue), n(blue)},
		},
	},
	{
		ID: "dog", Name: "Friendly Dog", Cost: 10, Difficulty: Easy, Icon: "🐶",
		Description: "Build a cute puppy friend",
		Pattern: [][]Cell{
			{s(brown), s(brown)},
			{n(brown), n(brown)},
			{l(brown)},
			{s(brown), s(brown), s(brown), s(brown)},
		},
	},
}

// Catalog returns every model in display order.
func Catalog() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the model with the given id.
func Lookup(id string) (Model, error) {
	for _, m := range catalog {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, ErrUnknownModel
}

// ByDifficulty returns the models of difficulty d in display order.
func ByDifficulty(d Difficulty) []Model {
	var out []Model
	for _, m := range catalog {
		if m.Difficulty == d {
			out = append(out, m)
		}
	}
	return out
}

// modelNames implements fuzzy.Source over the catalog names.
type modelNames []Model

func (m modelNames) Len() int            { return len(m) }
func (m modelNames) String(i int) string { return strings.ToLower(m[i].Name) }

// Find resolves a user query to a model: an exact id first, then the best
// fuzzy match on the model name.
func Find(query string) (Model, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Model{}, ErrUnknownModel
	}
	if m, err := Lookup(q); err == nil {
		return m, nil
	}

	matches := fuzzy.FindFrom(q, modelNames(catalog))
	if len(matches) == 0 {
		return Model{}, ErrUnknownModel
	}
	return catalog[matches[0].Index], nil
}
