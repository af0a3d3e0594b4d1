package tracker

import (
	"github.com/2beens/gymlog/internal/calendar"
	"github.com/2beens/gymlog/internal/session"
	"github.com/2beens/gymlog/internal/workouts"
)

// View is everything the page needs to redraw after an action.
type View struct {
	Title        string                 `json:"title"`
	Year         int                    `json:"year"`
	Month        int                    `json:"month"`
	Cells        []calendar.Cell        `json:"cells"`
	Mode         session.Mode           `json:"mode"`
	SelectedDate string                 `json:"selectedDate,omitempty"`
	DayTitle     string                 `json:"dayTitle,omitempty"`
	DayLogs      []workouts.Set         `json:"dayLogs"`
	BodyParts    []string               `json:"bodyParts"`
	Editing      *EditForm              `json:"editing,omitempty"`
	Message      *session.StatusMessage `json:"message,omitempty"`
}

// EditForm carries the current values of the set being edited.
type EditForm struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	BodyPart string  `json:"bodyPart"`
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
}

func newEditForm(set workouts.Set) *EditForm {
	return &EditForm{
		ID:       set.ID,
		Date:     set.Date,
		BodyPart: set.BodyPart,
		Exercise: set.Exercise,
		Weight:   set.Weight,
		Reps:     set.Reps,
	}
}

type AddSetsRequest struct {
	BodyPart string
	Exercise string
	Sets     []workouts.SetInput
}

type UpdateRequest struct {
	BodyPart string
	Exercise string
	Weight   float64
	Reps     int
}
