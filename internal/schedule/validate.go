package schedule

import (
	"math"
	"strconv"
	"strings"
)

// ParseRequest validates raw form input: a comma-separated course list and
// an hours value as typed by the user. Courses are checked before hours.
func ParseRequest(rawCourses, rawHours string) (ScheduleRequest, error) {
	return ParseCourseList(strings.Split(rawCourses, ","), rawHours)
}

// ParseCourseList validates pre-split course names with a raw hours value,
// for callers whose course list arrives as an array.
func ParseCourseList(courses []string, rawHours string) (ScheduleRequest, error) {
	cleaned, err := cleanCourses(courses)
	if err != nil {
		return ScheduleRequest{}, err
	}
	hours, err := parseHours(rawHours)
	if err != nil {
		return ScheduleRequest{}, err
	}
	return ScheduleRequest{courses: cleaned, availableHours: hours, valid: true}, nil
}

// NewRequest validates already-typed input. Each course is trimmed and
// blank entries are dropped, exactly as ParseRequest does after splitting.
func NewRequest(courses []string, hours float64) (ScheduleRequest, error) {
	cleaned, err := cleanCourses(courses)
	if err != nil {
		return ScheduleRequest{}, err
	}
	if err := checkHours(hours, ""); err != nil {
		return ScheduleRequest{}, err
	}
	return ScheduleRequest{courses: cleaned, availableHours: hours, valid: true}, nil
}

func cleanCourses(pieces []string) ([]string, error) {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, &ValidationError{Field: FieldCourses, Err: ErrNoCourses}
	}
	return out, nil
}

func parseHours(raw string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ValidationError{Field: FieldAvailableHours, Err: ErrHoursOutOfRange, Input: raw}
	}
	return h, checkHours(h, raw)
}

func checkHours(h float64, raw string) error {
	if math.IsNaN(h) || h < MinHours || h > MaxHours {
		if raw == "" {
			raw = strconv.FormatFloat(h, 'g', -1, 64)
		}
		return &ValidationError{Field: FieldAvailableHours, Err: ErrHoursOutOfRange, Input: raw}
	}
	return nil
}
