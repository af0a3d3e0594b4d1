package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/gymlog/internal/storage"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type AddResult struct {
	Added   []Set
	Skipped int
}

func (r AddResult) Count() int {
	return len(r.Added)
}

// LogStore owns the workout sets. It keeps nothing in memory: every call
// loads the collection through the adapter, so reads always see the latest
// saved state.
type LogStore struct {
	adapter *storage.Adapter
	ids     *IDGenerator
}

func NewLogStore(adapter *storage.Adapter, ids *IDGenerator) *LogStore {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &LogStore{
		adapter: adapter,
		ids:     ids,
	}
}

func emptySets() []Set {
	return []Set{}
}

func (s *LogStore) load(ctx context.Context) ([]Set, error) {
	sets, err := storage.Load(ctx, s.adapter, storage.LogsKey, emptySets)
	if err != nil {
		return nil, fmt.Errorf("load workout logs: %w", err)
	}
	return sets, nil
}

func (s *LogStore) save(ctx context.Context, sets []Set) error {
	if err := storage.Save(ctx, s.adapter, storage.LogsKey, sets); err != nil {
		return fmt.Errorf("save workout logs: %w", err)
	}
	return nil
}

// AllLogs returns every set in insertion order.
func (s *LogStore) AllLogs(ctx context.Context) ([]Set, error) {
	return s.load(ctx)
}

// LogsForDate returns the sets whose date equals date, in stored order.
func (s *LogStore) LogsForDate(ctx context.Context, date string) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logstore.logs_for_date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	forDate := make([]Set, 0)
	for _, set := range all {
		if set.Date == date {
			forDate = append(forDate, set)
		}
	}
	return forDate, nil
}

// LogDates returns the set of dates having at least one set.
func (s *LogStore) LogDates(ctx context.Context) (map[string]bool, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dates := make(map[string]bool)
	for _, set := range all {
		dates[set.Date] = true
	}
	return dates, nil
}

func (s *LogStore) Get(ctx context.Context, id int64) (Set, error) {
	all, err := s.load(ctx)
	if err != nil {
		return Set{}, err
	}

	for _, set := range all {
		if set.ID == id {
			return set, nil
		}
	}
	return Set{}, fmt.Errorf("%w: %d", ErrSetNotFound, id)
}

// AddSets appends one set per valid input row (weight > 0 and reps > 0),
// in input order, and persists the collection once. Invalid rows are skipped
// and counted in AddResult.Skipped.
func (s *LogStore) AddSets(
	ctx context.Context,
	date, bodyPart, exercise string,
	inputs []SetInput,
) (_ AddResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logstore.add_sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))
	span.SetAttributes(attribute.Int("inputs", len(inputs)))

	if !ValidDate(date) {
		return AddResult{}, fmt.Errorf("%w: [%s]", ErrInvalidDate, date)
	}

	var valid []SetInput
	result := AddResult{Added: []Set{}}
	for _, in := range inputs {
		if !in.Valid() {
			result.Skipped++
			continue
		}
		valid = append(valid, in)
	}

	if len(valid) == 0 {
		log.Debugf("logstore, nothing to add for [%s], skipped %d", date, result.Skipped)
		return result, nil
	}

	all, err := s.load(ctx)
	if err != nil {
		return AddResult{}, err
	}

	var maxID int64
	for _, set := range all {
		maxID = max(maxID, set.ID)
	}

	ids := s.ids.NextBatch(len(valid), maxID)
	for i, in := range valid {
		set := Set{
			ID:       ids[i],
			Date:     date,
			BodyPart: bodyPart,
			Exercise: exercise,
			Reps:     in.Reps,
			Weight:   in.Weight,
		}
		all = append(all, set)
		result.Added = append(result.Added, set)
	}

	if err := s.save(ctx, all); err != nil {
		return AddResult{}, err
	}

	span.SetAttributes(attribute.Int("added", len(result.Added)))
	log.Debugf("logstore, added %d sets for [%s] [%s] [%s], skipped %d",
		len(result.Added), date, bodyPart, exercise, result.Skipped)

	return result, nil
}

// UpdateLog overwrites body part, exercise, weight and reps of the set with
// the given id. ID and date never change.
func (s *LogStore) UpdateLog(
	ctx context.Context,
	id int64,
	bodyPart, exercise string,
	weight float64, reps int,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logstore.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	if !(SetInput{Weight: weight, Reps: reps}).Valid() {
		return ErrInvalidSet
	}

	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(all, id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrSetNotFound, id)
	}

	all[idx].BodyPart = bodyPart
	all[idx].Exercise = exercise
	all[idx].Weight = weight
	all[idx].Reps = reps

	return s.save(ctx, all)
}

func (s *LogStore) DeleteLog(ctx context.Context, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "logstore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	all, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(all, id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrSetNotFound, id)
	}

	remaining := append(all[:idx:idx], all[idx+1:]...)
	return s.save(ctx, remaining)
}

func indexOf(sets []Set, id int64) int {
	for i := range sets {
		if sets[i].ID == id {
			return i
		}
	}
	return -1
}
