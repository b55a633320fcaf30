package problemgen

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Generator produces random multiplication questions.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator drawing from src. A nil src seeds from the clock.
func New(src rand.Source) *Generator {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	return &Generator{rng: rand.New(src)}
}

// Generate returns a question whose multiplicand is drawn uniformly from the
// effective table set and whose multiplier is drawn uniformly from 1..12.
// Consecutive calls may repeat.
func (g *Generator) Generate(selected []int) Question {
	tables := EffectiveTables(selected)
	multiplicand := tables[g.rng.IntN(len(tables))]
	multiplier := MinTable + g.rng.IntN(MaxTable-MinTable+1)
	return NewQuestion(multiplicand, multiplier)
}

// EffectiveTables normalizes a table selection: out-of-range values and
// duplicates are dropped and the result is sorted. An empty result means
// "all tables".
func EffectiveTables(selected []int) []int {
	var tables []int
	for _, n := range selected {
		if ValidTable(n) && !slices.Contains(tables, n) {
			tables = append(tables, n)
		}
	}
	if len(tables) == 0 {
		return AllTables()
	}
	slices.Sort(tables)
	return tables
}
