package problemgen

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func newTestGenerator() *Generator {
	return New(rand.NewPCG(1, 2))
}

func TestGenerate_AnswerIsProduct(t *testing.T) {
	g := newTestGenerator()
	for i := 0; i < 500; i++ {
		q := g.Generate(nil)
		if q.Answer != q.Multiplicand*q.Multiplier {
			t.Fatalf("Answer = %d, want %d×%d", q.Answer, q.Multiplicand, q.Multiplier)
		}
		if !ValidTable(q.Multiplicand) || !ValidTable(q.Multiplier) {
			t.Fatalf("operands out of range: %+v", q)
		}
	}
}

func TestGenerate_RespectsSelection(t *testing.T) {
	g := newTestGenerator()
	selected := []int{3, 7}
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		q := g.Generate(selected)
		if !slices.Contains(selected, q.Multiplicand) {
			t.Fatalf("multiplicand %d not in selection %v", q.Multiplicand, selected)
		}
		seen[q.Multiplicand] = true
	}
	if !seen[3] || !seen[7] {
		t.Errorf("expected both selected tables to appear, saw %v", seen)
	}
}

func TestGenerate_EmptySelectionUsesAllTables(t *testing.T) {
	g := newTestGenerator()
	seen := map[int]bool{}
	multipliers := map[int]bool{}
	for i := 0; i < 2000; i++ {
		q := g.Generate(nil)
		seen[q.Multiplicand] = true
		multipliers[q.Multiplier] = true
	}
	if len(seen) != MaxTable {
		t.Errorf("saw %d distinct multiplicands, want %d", len(seen), MaxTable)
	}
	if len(multipliers) != MaxTable {
		t.Errorf("saw %d distinct multipliers, want %d", len(multipliers), MaxTable)
	}
}

func TestEffectiveTables(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		want     []int
	}{
		{"nil", nil, AllTables()},
		{"empty", []int{}, AllTables()},
		{"sorted and deduped", []int{9, 2, 9, 5}, []int{2, 5, 9}},
		{"drops out of range", []int{0, 13, 4, -1}, []int{4}},
		{"all invalid", []int{0, 99}, AllTables()},
	}

	for _, tt := range tests {
		got := EffectiveTables(tt.selected)
		if !slices.Equal(got, tt.want) {
			t.Errorf("%s: EffectiveTables(%v) = %v, want %v", tt.name, tt.selected, got, tt.want)
		}
	}
}

func TestQuestionText(t *testing.T) {
	q := NewQuestion(7, 8)
	if q.Text() != "7 × 8" {
		t.Errorf("Text() = %q, want %q", q.Text(), "7 × 8")
	}
}
