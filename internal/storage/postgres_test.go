package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePgx keeps blobs in a map and answers the two statements PostgresKV uses.
type fakePgx struct {
	rows     map[string]string
	execErr  error
	lastExec string
	lastArgs []any
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

func (f *fakePgx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastExec = sql
	f.lastArgs = args
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if strings.Contains(sql, "INSERT INTO kv_blob") {
		f.rows[args[0].(string)] = args[1].(string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakePgx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	value, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func TestPostgresKV_GetSet(t *testing.T) {
	fake := &fakePgx{rows: make(map[string]string)}
	kv := NewPostgresKV(fake, "")
	fixedNow := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	require.NoError(t, kv.EnsureSchema(ctx))
	assert.Contains(t, fake.lastExec, "CREATE TABLE IF NOT EXISTS kv_blob")

	_, err := kv.Get(ctx, LogsKey)
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, LogsKey, []byte(`[]`)))
	assert.Equal(t, []any{LogsKey, `[]`, fixedNow}, fake.lastArgs)

	got, err := kv.Get(ctx, LogsKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.ErrorIs(t, kv.Set(ctx, "", []byte(`[]`)), ErrInvalidKey)
}

func TestPostgresKV_Errors(t *testing.T) {
	fake := &fakePgx{rows: make(map[string]string), execErr: errors.New("conn closed")}
	kv := NewPostgresKV(fake, "")
	ctx := context.Background()

	require.Error(t, kv.EnsureSchema(ctx))
	err := kv.Set(ctx, ExercisesKey, []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn closed")
}

func TestPostgresKV_KeyPrefix(t *testing.T) {
	fake := &fakePgx{rows: make(map[string]string)}
	ctx := context.Background()

	staging := NewPostgresKV(fake, "staging")
	prod := NewPostgresKV(fake, "prod")

	require.NoError(t, staging.Set(ctx, LogsKey, []byte(`[{"id":1}]`)))
	require.NoError(t, prod.Set(ctx, LogsKey, []byte(`[]`)))
	assert.Equal(t, map[string]string{
		"staging:workout_logs": `[{"id":1}]`,
		"prod:workout_logs":    `[]`,
	}, fake.rows)

	got, err := staging.Get(ctx, LogsKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	_, err = NewPostgresKV(fake, "dev").Get(ctx, LogsKey)
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestPrefixedKey(t *testing.T) {
	assert.Equal(t, "workout_logs", PrefixedKey("", LogsKey))
	assert.Equal(t, "gymlog:exercise_list", PrefixedKey("gymlog", ExercisesKey))
}
