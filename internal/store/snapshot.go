package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// snapshotRepo implements SnapshotRepo as one record per key.
type snapshotRepo struct {
	kv  KVRepo
	log zerolog.Logger
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	records, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, records); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Load(ctx context.Context) (*Snapshot, error) {
	raw := make(map[string][]byte, len(AllKeys()))
	for _, key := range AllKeys() {
		value, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if ok {
			raw[key] = value
		}
	}
	return decodeSnapshot(raw, r.log), nil
}

func (r *snapshotRepo) Wipe(ctx context.Context) error {
	if err := r.kv.Delete(ctx, AllKeys()...); err != nil {
		return fmt.Errorf("wipe snapshot: %w", err)
	}
	return nil
}

// encodeSnapshot serializes every slice of the snapshot into its record.
func encodeSnapshot(snap *Snapshot) (map[string][]byte, error) {
	if snap == nil || snap.Profile == nil {
		return nil, fmt.Errorf("encode snapshot: missing profile")
	}

	stats := snap.Stats
	if stats == nil {
		stats = &StatsData{}
	}
	values := map[string]any{
		KeyProfile:        snap.Profile,
		KeyStats:          stats,
		KeyBricks:         nonNil(snap.Bricks),
		KeyAchievements:   nonNil(snap.Achievements),
		KeyBuilds:         nonNil(snap.Builds),
		KeySelectedTables: nonNil(snap.SelectedTables),
	}

	records := make(map[string][]byte, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		records[key] = b
	}
	return records, nil
}

// decodeSnapshot rebuilds a snapshot from raw records. A record that is
// malformed or fails validation is logged and treated as absent. Without a
// readable profile there is nothing to resume and nil is returned.
func decodeSnapshot(raw map[string][]byte, log zerolog.Logger) *Snapshot {
	var snap Snapshot

	load := func(key string, dst any) bool {
		value, ok := raw[key]
		if !ok {
			return false
		}
		if err := decodeRecord(key, value, dst); err != nil {
			log.Warn().Err(err).Str("record", key).Msg("ignoring unreadable record")
			return false
		}
		return true
	}

	var profile ProfileData
	if !load(KeyProfile, &profile) {
		return nil
	}
	snap.Profile = &profile

	var stats StatsData
	if load(KeyStats, &stats) {
		snap.Stats = &stats
	}

	var achievements []AchievementData
	if load(KeyAchievements, &achievements) && achievements != nil {
		snap.Achievements = achievements
	}

	load(KeyBricks, &snap.Bricks)
	load(KeyBuilds, &snap.Builds)
	load(KeySelectedTables, &snap.SelectedTables)

	return &snap
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
