package store

import (
	"context"
	"time"
)

// Record keys. Each key holds one JSON document.
const (
	KeyProfile        = "profile"
	KeyStats          = "stats"
	KeyBricks         = "bricks"
	KeyAchievements   = "achievements"
	KeyBuilds         = "builds"
	KeySelectedTables = "selected_tables"
)

// AllKeys lists every record key in save order.
func AllKeys() []string {
	return []string{KeyProfile, KeyStats, KeyBricks, KeyAchievements, KeyBuilds, KeySelectedTables}
}

// ProfileData is the persisted player profile.
type ProfileData struct {
	Name          string    `json:"name"`
	LoginDate     time.Time `json:"loginDate"`
	LastPlayDate  time.Time `json:"lastPlayDate"`
	TotalPlayTime int64     `json:"totalPlayTime"` // seconds
}

// StatsData is the persisted aggregate counters. Mastered tables are stored
// as an ordered list.
type StatsData struct {
	Correct         int   `json:"correct"`
	Incorrect       int   `json:"incorrect"`
	Streak          int   `json:"streak"`
	BestStreak      int   `json:"bestStreak"`
	TotalBricks     int   `json:"totalBricks"`
	SessionsPlayed  int   `json:"sessionsPlayed"`
	PerfectRounds   int   `json:"perfectRounds"`
	TablesCompleted []int `json:"tablesCompleted"`
}

// BrickData is one ledger entry.
type BrickData struct {
	ID        string    `json:"id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	EarnedFor string    `json:"earnedFor"`
	Timestamp time.Time `json:"timestamp"`
}

// AchievementData is one catalog entry with its progress.
type AchievementData struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	BricksEarned int        `json:"bricksEarned"`
	Unlocked     bool       `json:"unlocked"`
	Progress     int        `json:"progress"`
	MaxProgress  int        `json:"maxProgress"`
	UnlockedAt   *time.Time `json:"unlockedAt,omitempty"`
}

// BuildData is one completed build.
type BuildData struct {
	ID          string    `json:"id"`
	ModelID     string    `json:"modelId"`
	CompletedAt time.Time `json:"completedAt"`
	BricksUsed  int       `json:"bricksUsed"`
}

// Snapshot captures the full player state. A nil Stats or Achievements
// means the record was absent (or unreadable) and the owner should start
// that slice from defaults.
type Snapshot struct {
	Profile        *ProfileData      `json:"profile"`
	Stats          *StatsData        `json:"stats,omitempty"`
	Bricks         []BrickData       `json:"bricks"`
	Achievements   []AchievementData `json:"achievements,omitempty"`
	Builds         []BuildData       `json:"builds"`
	SelectedTables []int             `json:"selectedTables"`
}

// SnapshotRepo persists player snapshots.
type SnapshotRepo interface {
	// Save writes every record of the snapshot atomically.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the stored snapshot, or nil if no profile is stored.
	Load(ctx context.Context) (*Snapshot, error)

	// Wipe deletes all stored records.
	Wipe(ctx context.Context) error
}

// KVRepo is the raw key-value record store.
type KVRepo interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put upserts all records in a single transaction.
	Put(ctx context.Context, records map[string][]byte) error

	// Delete removes the given keys. With no keys it removes everything.
	Delete(ctx context.Context, keys ...string) error

	// Keys lists stored keys in sorted order.
	Keys(ctx context.Context) ([]string, error)
}
