package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

// BackupVersion is the format version written by EncodeBackup.
const BackupVersion = 1

// backupDocument is the single-file export format. Records are kept as raw
// JSON so they are validated exactly like stored records on import.
type backupDocument struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exportedAt"`
	Records    map[string]json.RawMessage `json:"records"`
}

// EncodeBackup writes snap to w as one JSON document.
func EncodeBackup(w io.Writer, snap *Snapshot, at time.Time) error {
	records, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	doc := backupDocument{
		Version:    BackupVersion,
		ExportedAt: at.UTC(),
		Records:    make(map[string]json.RawMessage, len(records)),
	}
	for k, v := range records {
		doc.Records[k] = v
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// DecodeBackup reads a document written by EncodeBackup. Unreadable records
// fall back to defaults as they do on load; a document without a readable
// profile is rejected.
func DecodeBackup(r io.Reader, log zerolog.Logger) (*Snapshot, error) {
	var doc backupDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if doc.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version %d", doc.Version)
	}

	raw := make(map[string][]byte, len(doc.Records))
	for k, v := range doc.Records {
		raw[k] = v
	}

	snap := decodeSnapshot(raw, log)
	if snap == nil {
		return nil, fmt.Errorf("backup has no readable profile")
	}
	return snap, nil
}

// BackupFileName names an export for player taken at the given time,
// e.g. "ana-maria-20250101-093000.json".
func BackupFileName(player string, at time.Time) string {
	name := slug.Make(player)
	if name == "" {
		name = "player"
	}
	return fmt.Sprintf("%s-%s.json", name, at.Format("20060102-150405"))
}
