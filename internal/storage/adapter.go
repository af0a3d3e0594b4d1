package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// CorruptionPolicy decides what Load does with a blob that does not parse.
type CorruptionPolicy int

const (
	// FailFast returns ErrCorruptBlob to the caller.
	FailFast CorruptionPolicy = iota
	// RecoverToDefault logs a warning and returns the default value.
	// The corrupt blob stays in place until the next Save overwrites it.
	RecoverToDefault
)

func (p CorruptionPolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case RecoverToDefault:
		return "recover-to-default"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Adapter stores JSON encoded values in a KV.
type Adapter struct {
	kv      KV
	policy  CorruptionPolicy
	metrics *metrics.Manager
}

type AdapterOption func(a *Adapter)

func WithCorruptionPolicy(policy CorruptionPolicy) AdapterOption {
	return func(a *Adapter) {
		a.policy = policy
	}
}

func WithMetrics(m *metrics.Manager) AdapterOption {
	return func(a *Adapter) {
		a.metrics = m
	}
}

func NewAdapter(kv KV, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		kv:     kv,
		policy: FailFast,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Policy() CorruptionPolicy {
	return a.policy
}

func (a *Adapter) observe(op, key string, begin time.Time) {
	if a.metrics == nil {
		return
	}
	a.metrics.HistogramStorageDuration.WithLabelValues(op, key).Observe(time.Since(begin).Seconds())
}

// Load returns the value stored under key, or def() when nothing (or an empty
// blob, or JSON null) is stored there.
func Load[T any](ctx context.Context, a *Adapter, key string, def func() T) (_ T, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))
	defer a.observe("load", key, time.Now())

	var zero T
	blob, err := a.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return def(), nil
	}
	if err != nil {
		return zero, fmt.Errorf("load [%s]: %w", key, err)
	}

	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def(), nil
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		if a.policy == RecoverToDefault {
			log.Warnf("storage, blob [%s] corrupt, falling back to default: %s", key, err)
			return def(), nil
		}
		return zero, fmt.Errorf("%w: [%s]: %s", ErrCorruptBlob, key, err)
	}

	return value, nil
}

func Save[T any](ctx context.Context, a *Adapter, key string, value T) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))
	defer a.observe("save", key, time.Now())

	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal [%s]: %w", key, err)
	}
	span.SetAttributes(attribute.Int("size", len(blob)))

	if err := a.kv.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("save [%s]: %w", key, err)
	}
	return nil
}
