package time_parser

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const DateLayout = "2006-01-02"

// ParseDate converts a date coming from a form or JSON body to time.Time in UTC.
// Supported formats:
//   - empty or blank string: nil, nil
//   - calendar date "2006-01-02" (midnight UTC)
//   - RFC3339, RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	formats := []string{
		DateLayout,
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}

	return nil, ErrInvalidDate
}

// ParseDatePtr is ParseDate for optional fields.
func ParseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	return ParseDate(*value)
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(DateLayout)
}

// DaysBetween returns the fractional number of days from start to end.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
