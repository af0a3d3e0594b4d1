package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/2beens/gymlog/internal/calendar"
	"github.com/2beens/gymlog/internal/session"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// status messages shown to the user
const (
	msgSelectDate     = "カレンダーの日付を選んでください"
	msgFinishEditing  = "編集中の記録を更新するかキャンセルしてください"
	msgNotEditing     = "編集中の記録はありません"
	msgUnknownPart    = "登録されていない部位です"
	msgSelectExercise = "種目を選んでください"
	msgNoValidSets    = "重量と回数は0より大きい数を入力してください"
	msgInvalidDate    = "日付が正しくありません"
	msgNotFound       = "記録が見つかりません"
	msgEmptyExercise  = "種目名を入力してください"
	msgSetsAdded      = "%dセット追加しました"
	msgSetsSkipped    = "%dセット追加しました（重量か回数が正しくない%dセットはスキップ）"
	msgUpdated        = "更新しました"
	msgDeleted        = "削除しました"
	msgExerciseAdded  = "種目を追加しました"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=tracker_test

type logStore interface {
	AllLogs(ctx context.Context) ([]workouts.Set, error)
	LogsForDate(ctx context.Context, date string) ([]workouts.Set, error)
	LogDates(ctx context.Context) (map[string]bool, error)
	Get(ctx context.Context, id int64) (workouts.Set, error)
	AddSets(ctx context.Context, date, bodyPart, exercise string, inputs []workouts.SetInput) (workouts.AddResult, error)
	UpdateLog(ctx context.Context, id int64, bodyPart, exercise string, weight float64, reps int) error
	DeleteLog(ctx context.Context, id int64) error
}

type catalogStore interface {
	Load(ctx context.Context) (workouts.Catalog, error)
	ListExercises(ctx context.Context, bodyPart string) ([]string, error)
	AddExercise(ctx context.Context, bodyPart, name string) (bool, error)
}

// Service holds the one user session and runs every action against it, one
// at a time. Validation problems and lookup misses end up in the view's
// status message; storage failures are returned as errors.
type Service struct {
	mu sync.Mutex

	logs           logStore
	catalog        catalogStore
	metricsManager *metrics.Manager
	now            func() time.Time

	state   session.State
	message *session.StatusMessage
}

func NewService(
	logs logStore,
	catalog catalogStore,
	metricsManager *metrics.Manager,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		logs:           logs,
		catalog:        catalog,
		metricsManager: metricsManager,
		now:            now,
		state:          session.New(now()),
	}
}

// State returns a copy of the current session state.
func (s *Service) State() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Service) info(text string) {
	s.message = session.Info(text, s.now())
}

func (s *Service) fail(text string) {
	s.message = session.Error(text, s.now())
}

func (s *Service) lookupMiss(action string) {
	s.fail(msgNotFound)
	if s.metricsManager != nil {
		s.metricsManager.CounterLookupMisses.WithLabelValues(action).Inc()
	}
}

func (s *Service) View(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildView(ctx)
}

func (s *Service) SelectDate(ctx context.Context, date string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.SelectDate(date)
	if err != nil {
		log.Debugf("tracker, select date: %s", err)
		s.fail(msgInvalidDate)
		return s.buildView(ctx)
	}
	s.state = next

	return s.buildView(ctx)
}

func (s *Service) PrevMonth(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.PrevMonth()
	return s.buildView(ctx)
}

func (s *Service) NextMonth(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.NextMonth()
	return s.buildView(ctx)
}

// AddSets records the valid rows of the request for the selected date.
func (s *Service) AddSets(ctx context.Context, req AddSetsRequest) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.add_sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.Mode() {
	case session.Idle:
		s.fail(msgSelectDate)
		return s.buildView(ctx)
	case session.Editing:
		s.fail(msgFinishEditing)
		return s.buildView(ctx)
	}

	known, err := s.knownBodyPart(ctx, req.BodyPart)
	if err != nil {
		return View{}, err
	}
	if !known {
		s.fail(msgUnknownPart)
		return s.buildView(ctx)
	}
	if strings.TrimSpace(req.Exercise) == "" {
		s.fail(msgSelectExercise)
		return s.buildView(ctx)
	}

	span.SetAttributes(attribute.String("date", s.state.SelectedDate))
	res, err := s.logs.AddSets(ctx, s.state.SelectedDate, req.BodyPart, req.Exercise, req.Sets)
	if err != nil {
		return View{}, fmt.Errorf("add sets: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSetsAdded.Add(float64(res.Count()))
		s.metricsManager.CounterSetsSkipped.Add(float64(res.Skipped))
	}

	if res.Count() == 0 {
		s.fail(msgNoValidSets)
		return s.buildView(ctx)
	}

	if res.Skipped > 0 {
		s.fail(fmt.Sprintf(msgSetsSkipped, res.Count(), res.Skipped))
		return s.buildView(ctx)
	}

	s.info(fmt.Sprintf(msgSetsAdded, res.Count()))
	return s.buildView(ctx)
}

func (s *Service) StartEdit(ctx context.Context, id int64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Mode() == session.Idle {
		s.fail(msgSelectDate)
		return s.buildView(ctx)
	}

	if _, err := s.logs.Get(ctx, id); err != nil {
		if !errors.Is(err, workouts.ErrSetNotFound) {
			return View{}, fmt.Errorf("start edit: %w", err)
		}
		s.lookupMiss("edit")
		return s.buildView(ctx)
	}

	next, err := s.state.StartEdit(id)
	if err != nil {
		s.fail(msgSelectDate)
		return s.buildView(ctx)
	}
	s.state = next

	return s.buildView(ctx)
}

func (s *Service) CancelEdit(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.CancelEdit()
	if err != nil {
		s.fail(msgNotEditing)
		return s.buildView(ctx)
	}
	s.state = next

	return s.buildView(ctx)
}

// UpdateLog saves the edit form over the set being edited and leaves edit mode.
func (s *Service) UpdateLog(ctx context.Context, req UpdateRequest) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.update_log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanUpdate() {
		s.fail(msgNotEditing)
		return s.buildView(ctx)
	}
	span.SetAttributes(attribute.Int64("id", s.state.EditingID))

	if !(workouts.SetInput{Weight: req.Weight, Reps: req.Reps}).Valid() {
		s.fail(msgNoValidSets)
		return s.buildView(ctx)
	}

	known, err := s.knownBodyPart(ctx, req.BodyPart)
	if err != nil {
		return View{}, err
	}
	if !known {
		s.fail(msgUnknownPart)
		return s.buildView(ctx)
	}
	if strings.TrimSpace(req.Exercise) == "" {
		s.fail(msgSelectExercise)
		return s.buildView(ctx)
	}

	err = s.logs.UpdateLog(ctx, s.state.EditingID, req.BodyPart, req.Exercise, req.Weight, req.Reps)
	switch {
	case errors.Is(err, workouts.ErrSetNotFound):
		// the set is gone, nothing left to edit
		s.state, _ = s.state.CancelEdit()
		s.lookupMiss("update")
		return s.buildView(ctx)
	case errors.Is(err, workouts.ErrInvalidSet):
		s.fail(msgNoValidSets)
		return s.buildView(ctx)
	case err != nil:
		return View{}, fmt.Errorf("update log: %w", err)
	}

	s.state, _ = s.state.FinishEdit()
	if s.metricsManager != nil {
		s.metricsManager.CounterLogsUpdated.Inc()
	}
	s.info(msgUpdated)

	return s.buildView(ctx)
}

func (s *Service) DeleteLog(ctx context.Context, id int64) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.delete_log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.logs.DeleteLog(ctx, id)
	if errors.Is(err, workouts.ErrSetNotFound) {
		s.lookupMiss("delete")
		return s.buildView(ctx)
	}
	if err != nil {
		return View{}, fmt.Errorf("delete log: %w", err)
	}

	if s.state.EditingID == id {
		s.state, _ = s.state.CancelEdit()
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterLogsDeleted.Inc()
	}
	s.info(msgDeleted)

	return s.buildView(ctx)
}

func (s *Service) AddExercise(ctx context.Context, bodyPart, name string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.knownBodyPart(ctx, bodyPart)
	if err != nil {
		return View{}, err
	}
	if !known {
		s.fail(msgUnknownPart)
		return s.buildView(ctx)
	}

	added, err := s.catalog.AddExercise(ctx, bodyPart, name)
	if err != nil {
		return View{}, fmt.Errorf("add exercise: %w", err)
	}
	if !added {
		s.fail(msgEmptyExercise)
		return s.buildView(ctx)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterExercisesAdded.Inc()
	}
	s.info(msgExerciseAdded)

	return s.buildView(ctx)
}

// Exercises lists the names for one body part. Unknown body parts return
// workouts.ErrUnknownBodyPart.
func (s *Service) Exercises(ctx context.Context, bodyPart string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ListExercises(ctx, bodyPart)
}

func (s *Service) Catalog(ctx context.Context) (workouts.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Load(ctx)
}

// Logs returns the sets of any date without touching the session.
func (s *Service) Logs(ctx context.Context, date string) ([]workouts.Set, error) {
	if !workouts.ValidDate(date) {
		return nil, fmt.Errorf("%w: [%s]", workouts.ErrInvalidDate, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs.LogsForDate(ctx, date)
}

func (s *Service) knownBodyPart(ctx context.Context, bodyPart string) (bool, error) {
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("check body part: %w", err)
	}
	return catalog.Has(bodyPart), nil
}

func (s *Service) buildView(ctx context.Context) (View, error) {
	now := s.now()

	logDates, err := s.logs.LogDates(ctx)
	if err != nil {
		return View{}, fmt.Errorf("build view: %w", err)
	}
	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return View{}, fmt.Errorf("build view: %w", err)
	}

	cursor := s.state.Cursor
	view := View{
		Title: cursor.Title(),
		Year:  cursor.Year,
		Month: int(cursor.Month),
		Cells: calendar.Project(calendar.ProjectParams{
			Month:        cursor,
			Today:        now,
			SelectedDate: s.state.SelectedDate,
			LogDates:     logDates,
		}),
		Mode:         s.state.Mode(),
		SelectedDate: s.state.SelectedDate,
		DayLogs:      []workouts.Set{},
		BodyParts:    catalog.Categories(),
	}

	if s.state.SelectedDate != "" {
		dayTitle, err := calendar.DayTitle(s.state.SelectedDate)
		if err != nil {
			return View{}, fmt.Errorf("build view: %w", err)
		}
		view.DayTitle = dayTitle

		dayLogs, err := s.logs.LogsForDate(ctx, s.state.SelectedDate)
		if err != nil {
			return View{}, fmt.Errorf("build view: %w", err)
		}
		view.DayLogs = dayLogs

		if s.state.EditingID != 0 {
			for _, set := range dayLogs {
				if set.ID == s.state.EditingID {
					view.Editing = newEditForm(set)
					break
				}
			}
		}
	}

	// an edited set from another day is still editable
	if view.Editing == nil && s.state.EditingID != 0 {
		set, err := s.logs.Get(ctx, s.state.EditingID)
		if err != nil && !errors.Is(err, workouts.ErrSetNotFound) {
			return View{}, fmt.Errorf("build view: %w", err)
		}
		if err == nil {
			view.Editing = newEditForm(set)
		}
	}

	if s.message.Visible(now) {
		view.Message = s.message
	}

	return view, nil
}
