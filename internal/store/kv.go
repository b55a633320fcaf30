package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// kvRepo implements KVRepo on the kv table using ent's SQL builder.
type kvRepo struct {
	driver *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var rows entsql.Rows
	if err := r.driver.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("read %s: %w", key, err)
		}
		return nil, false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, fmt.Errorf("scan %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *kvRepo) Put(ctx context.Context, records map[string][]byte) error {
	if len(records) == 0 {
		return nil
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tx, err := r.driver.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	now := time.Now().UTC()
	for _, k := range keys {
		query, args := builder().Insert(kvTable).
			Columns("key", "value", "updated_at").
			Values(k, string(records[k]), now).
			OnConflict(
				entsql.ConflictColumns("key"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, keys ...string) error {
	del := builder().Delete(kvTable)
	if len(keys) > 0 {
		vals := make([]any, len(keys))
		for i, k := range keys {
			vals[i] = k
		}
		del = del.Where(entsql.In("key", vals...))
	}

	query, args := del.Query()
	if err := r.driver.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

func (r *kvRepo) Keys(ctx context.Context) ([]string, error) {
	b := builder()
	query, args := b.Select("key").
		From(b.Table(kvTable)).
		OrderBy("key").
		Query()

	var rows entsql.Rows
	if err := r.driver.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
