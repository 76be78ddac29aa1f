package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Accepted layouts for publication dates.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

var (
	dateShape      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timestampShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
)

// ValidateDate checks that s is either a date or a timestamp that exists
// in the calendar. The empty string is valid and means "not provided".
func ValidateDate(s string) error {
	switch {
	case s == "":
		return nil
	case dateShape.MatchString(s):
		if t, err := time.Parse(DateLayout, s); err != nil || t.Format(DateLayout) != s {
			return &ValidationError{Field: "published", Message: "invalid date"}
		}
	case timestampShape.MatchString(s):
		if t, err := time.Parse(TimestampLayout, s); err != nil || t.Format(TimestampLayout) != s {
			return &ValidationError{Field: "published", Message: "invalid timestamp"}
		}
	default:
		return &ValidationError{
			Field:   "published",
			Message: "invalid format, expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS",
		}
	}
	return nil
}

// parsePublished converts a validated publication value to UTC. A bare date
// gets the current time of day in loc.
func parsePublished(s string, now time.Time, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) == len(DateLayout) {
		s += " " + now.In(loc).Format("15:04:05")
	}
	t, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err != nil {
		return nil, &ValidationError{Field: "published", Message: "invalid timestamp"}
	}
	t = t.UTC()
	return &t, nil
}

// requireInt checks that the optional filter value is a whole number.
func requireInt(filters map[string]string, key string) error {
	v := strings.TrimSpace(filters[key])
	if v == "" {
		return nil
	}
	if _, err := strconv.Atoi(v); err != nil {
		return &ValidationError{Field: key, Message: "must be a number"}
	}
	return nil
}
