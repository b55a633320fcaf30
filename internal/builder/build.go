package builder

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/brickmath/internal/store"
)

// CompletedBuild records one finished model.
type CompletedBuild struct {
	ID          string
	ModelID     string
	CompletedAt time.Time
	BricksUsed  int
}

// NewCompletedBuild records building m at the given time.
func NewCompletedBuild(m Model, at time.Time) CompletedBuild {
	return CompletedBuild{
		ID:          uuid.Must(uuid.NewV7()).String(),
		ModelID:     m.ID,
		CompletedAt: at,
		BricksUsed:  m.Cost,
	}
}

// Name returns the display name of the built model, or its id if the model
// has left the catalog.
func (b CompletedBuild) Name() string {
	if m, err := Lookup(b.ModelID); err == nil {
		return m.Name
	}
	return b.ModelID
}

// BuildsFromData restores completed builds from persisted records.
func BuildsFromData(data []store.BuildData) []CompletedBuild {
	out := make([]CompletedBuild, len(data))
	for i, d := range data {
		out[i] = CompletedBuild(d)
	}
	return out
}

// BuildsData converts completed builds for persistence.
func BuildsData(builds []CompletedBuild) []store.BuildData {
	out := make([]store.BuildData, len(builds))
	for i, b := range builds {
		out[i] = store.BuildData(b)
	}
	return out
}

// CountByModel tallies completed builds per model id.
func CountByModel(builds []CompletedBuild) map[string]int {
	counts := make(map[string]int)
	for _, b := range builds {
		counts[b.ModelID]++
	}
	return counts
}
