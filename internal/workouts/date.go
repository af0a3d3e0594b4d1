package workouts

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate checks that date is a real calendar day in the zero-padded
// YYYY-MM-DD form and returns it as midnight UTC.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: [%s]", ErrInvalidDate, date)
	}
	// rejects anything time.Parse is lenient about
	if t.Format(DateLayout) != date {
		return time.Time{}, fmt.Errorf("%w: [%s]", ErrInvalidDate, date)
	}
	return t, nil
}

func ValidDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

func FormatDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
