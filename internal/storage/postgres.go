package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
)

const createBlobTableSQL = `
CREATE TABLE IF NOT EXISTS kv_blob
(
    key        VARCHAR PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP WITHOUT TIME ZONE NOT NULL
);`

// pgxConn is the part of *pgxpool.Pool used here.
type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ KV = (*PostgresKV)(nil)

type PostgresKV struct {
	db     pgxConn
	prefix string
	now    func() time.Time
}

// NewPostgresKV stores blobs in kv_blob, with keys namespaced by prefix the
// same way RedisKV does it.
func NewPostgresKV(db pgxConn, prefix string) *PostgresKV {
	return &PostgresKV{
		db:     db,
		prefix: prefix,
		now:    time.Now,
	}
}

// EnsureSchema creates the blob table if it is not there yet.
func (p *PostgresKV) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createBlobTableSQL); err != nil {
		return fmt.Errorf("create kv_blob table: %w", err)
	}
	return nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	var value string
	err = p.db.QueryRow(
		ctx,
		`SELECT value FROM kv_blob WHERE key = $1;`,
		PrefixedKey(p.prefix, key),
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv blob [query row]: %w", err)
	}

	return []byte(value), nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))
	span.SetAttributes(attribute.Int("size", len(value)))

	if key == "" {
		return ErrInvalidKey
	}

	tag, err := p.db.Exec(
		ctx,
		`
			INSERT INTO kv_blob (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE
				SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`,
		PrefixedKey(p.prefix, key), string(value), p.now(),
	)
	if err != nil {
		return fmt.Errorf("kv blob [upsert]: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("kv blob [upsert]: no rows affected for key [%s]", key)
	}

	return nil
}
