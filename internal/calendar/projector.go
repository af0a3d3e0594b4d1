package calendar

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var weekdayNames = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Cell is one slot of the month grid. Leading slots before day 1 are blank.
type Cell struct {
	Blank      bool   `json:"blank"`
	Day        int    `json:"day,omitempty"`
	Date       string `json:"date,omitempty"`
	IsToday    bool   `json:"isToday,omitempty"`
	HasLog     bool   `json:"hasLog,omitempty"`
	IsSelected bool   `json:"isSelected,omitempty"`
}

type ProjectParams struct {
	Month        Month
	Today        time.Time
	SelectedDate string
	LogDates     map[string]bool
}

// Project lays out the month as FirstWeekday blank cells followed by one cell
// per day.
func Project(params ProjectParams) []Cell {
	m := params.Month
	blanks := m.FirstWeekday()
	days := m.DaysInMonth()

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Blank: true})
	}

	todayY, todayM, todayD := params.Today.Date()
	for day := 1; day <= days; day++ {
		date := m.DateString(day)
		cells = append(cells, Cell{
			Day:        day,
			Date:       date,
			IsToday:    todayY == m.Year && todayM == m.Month && todayD == day,
			HasLog:     params.LogDates[date],
			IsSelected: params.SelectedDate != "" && params.SelectedDate == date,
		})
	}

	return cells
}

// DayTitle renders a YYYY-MM-DD date as the day header, e.g. 3月5日（火）.
func DayTitle(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("day title [%s]: %w", date, err)
	}
	return fmt.Sprintf("%d月%d日（%s）", int(t.Month()), t.Day(), weekdayNames[t.Weekday()]), nil
}
