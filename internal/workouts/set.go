package workouts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrSetNotFound     = errors.New("workout set not found")
	ErrInvalidSet      = errors.New("weight and reps must be greater than 0")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrUnknownBodyPart = errors.New("unknown body part")
)

// Set is one recorded exercise set. JSON field names match the stored blob.
type Set struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	BodyPart string  `json:"bodypart"`
	Exercise string  `json:"exercise"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

// UnmarshalJSON accepts fractional reps found in older blobs and truncates
// them to whole reps.
func (s *Set) UnmarshalJSON(data []byte) error {
	type plainSet Set
	var raw struct {
		plainSet
		Reps json.Number `json:"reps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Set(raw.plainSet)
	if raw.Reps == "" {
		return nil
	}
	reps, err := repsFromNumber(string(raw.Reps))
	if err != nil {
		return fmt.Errorf("set [%d] reps: %w", s.ID, err)
	}
	s.Reps = reps
	return nil
}

func repsFromNumber(n string) (int, error) {
	if r, err := strconv.Atoi(n); err == nil {
		return r, nil
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("reps out of range: %s", n)
	}
	return int(math.Trunc(f)), nil
}

// SetInput is one weight/reps row of the add form.
type SetInput struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

func (in SetInput) Valid() bool {
	return validWeight(in.Weight) && in.Reps > 0
}

func validWeight(weight float64) bool {
	return weight > 0 && !math.IsInf(weight, 0) && !math.IsNaN(weight)
}

// ParseSetInput converts the raw form values. Empty or non-numeric fields
// become 0, which makes the row invalid (it gets skipped on add). Reps must
// be whole: "10" and "10.0" are 10, "8.5" is 0.
func ParseSetInput(weight, reps string) SetInput {
	var in SetInput
	if w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64); err == nil {
		in.Weight = w
	}
	reps = strings.TrimSpace(reps)
	if r, err := strconv.Atoi(reps); err == nil {
		in.Reps = r
	} else if f, err := strconv.ParseFloat(reps, 64); err == nil && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
		in.Reps = int(f)
	}
	return in
}
