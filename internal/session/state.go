package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/calendar"
	"github.com/2beens/gymlog/internal/workouts"
)

var ErrInvalidTransition = errors.New("invalid session transition")

type Mode int

const (
	Idle Mode = iota
	DateSelected
	Editing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case DateSelected:
		return "date_selected"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	for _, mode := range []Mode{Idle, DateSelected, Editing} {
		if mode.String() == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown mode: %q", text)
}

// State is what the user is looking at: the selected day, the set being
// edited and the month shown. Transitions return a new State and never touch
// the receiver.
type State struct {
	SelectedDate string
	EditingID    int64
	Cursor       calendar.Month
}

func New(now time.Time) State {
	return State{Cursor: calendar.MonthOf(now)}
}

func (s State) Mode() Mode {
	switch {
	case s.SelectedDate != "" && s.EditingID != 0:
		return Editing
	case s.SelectedDate != "":
		return DateSelected
	default:
		return Idle
	}
}

// SelectDate is allowed from any mode. A pending edit is dropped; the stored
// set is not touched.
func (s State) SelectDate(date string) (State, error) {
	if !workouts.ValidDate(date) {
		return s, fmt.Errorf("%w: [%s]", workouts.ErrInvalidDate, date)
	}
	s.SelectedDate = date
	s.EditingID = 0
	return s, nil
}

// StartEdit needs a selected date. Starting a second edit replaces the first.
func (s State) StartEdit(id int64) (State, error) {
	if s.Mode() == Idle {
		return s, fmt.Errorf("%w: edit without a selected date", ErrInvalidTransition)
	}
	if id == 0 {
		return s, fmt.Errorf("%w: edit of id 0", ErrInvalidTransition)
	}
	s.EditingID = id
	return s, nil
}

func (s State) FinishEdit() (State, error) {
	if s.Mode() != Editing {
		return s, fmt.Errorf("%w: finish edit from %s", ErrInvalidTransition, s.Mode())
	}
	s.EditingID = 0
	return s, nil
}

func (s State) CancelEdit() (State, error) {
	if s.Mode() != Editing {
		return s, fmt.Errorf("%w: cancel edit from %s", ErrInvalidTransition, s.Mode())
	}
	s.EditingID = 0
	return s, nil
}

func (s State) NextMonth() State {
	s.Cursor = s.Cursor.Next()
	return s
}

func (s State) PrevMonth() State {
	s.Cursor = s.Cursor.Prev()
	return s
}

func (s State) CanAdd() bool {
	return s.Mode() == DateSelected
}

func (s State) CanUpdate() bool {
	return s.Mode() == Editing
}
