package workouts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymlog/internal/workouts"
)

func TestParseDate(t *testing.T) {
	parsed, err := workouts.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), parsed)

	for _, date := range []string{
		"",
		"2023-02-29",
		"2024-3-5",
		"2024-03-5",
		"2024/03/05",
		"2024-13-01",
		"2024-03-05T10:00:00",
		"not-a-date",
	} {
		_, err := workouts.ParseDate(date)
		assert.ErrorIs(t, err, workouts.ErrInvalidDate, date)
		assert.False(t, workouts.ValidDate(date), date)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-03-05", workouts.FormatDate(2024, time.March, 5))
	assert.Equal(t, "2024-12-31", workouts.FormatDate(2024, time.December, 31))
	assert.Equal(t, "0999-01-01", workouts.FormatDate(999, time.January, 1))
	assert.True(t, workouts.ValidDate(workouts.FormatDate(2024, time.February, 29)))
}
