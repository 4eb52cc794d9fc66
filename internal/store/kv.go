package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const kvTable = "kv"

// sqliteKV implements KV on the kv table.
type sqliteKV struct {
	drv *entsql.Driver
}

func (k *sqliteKV) Get(ctx context.Context, key string) (string, bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("value").
		From(b.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	rows, err := k.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %q: %w", key, err)
	}
	return value, true, nil
}

func (k *sqliteKV) Set(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := k.drv.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (k *sqliteKV) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(kvTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := k.drv.ExecContext(ctx, query, args...); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (k *sqliteKV) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(kvTable).Query()
	if _, err := k.drv.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
