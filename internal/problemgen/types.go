package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// Table bounds for multiplicands and multipliers.
const (
	MinTable = 1
	MaxTable = 12
)

// Question is a single multiplication problem. It is created per round and
// discarded once the answer is checked or revealed.
type Question struct {
	Multiplicand int
	Multiplier   int
	Answer       int
}

// NewQuestion builds a question with its derived answer.
func NewQuestion(multiplicand, multiplier int) Question {
	return Question{
		Multiplicand: multiplicand,
		Multiplier:   multiplier,
		Answer:       multiplicand * multiplier,
	}
}

// Text returns the prompt shown to the player, e.g. "7 × 8".
func (q Question) Text() string {
	return fmt.Sprintf("%d × %d", q.Multiplicand, q.Multiplier)
}

// AllTables returns every table from MinTable to MaxTable.
func AllTables() []int {
	tables := make([]int, 0, MaxTable-MinTable+1)
	for n := MinTable; n <= MaxTable; n++ {
		tables = append(tables, n)
	}
	return tables
}

// ValidTable reports whether n is a playable table number.
func ValidTable(n int) bool {
	return n >= MinTable && n <= MaxTable
}

// FormatTables joins table numbers for display, returning none when the
// list is empty.
func FormatTables(tables []int, none string) string {
	if len(tables) == 0 {
		return none
	}
	parts := make([]string, len(tables))
	for i, n := range tables {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
