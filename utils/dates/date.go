package dates

import "time"

const (
	// DayLabelFormat renders days as "Jan 14".
	DayLabelFormat = "Jan 02"
	ClockFormat    = "15:04:05"
)

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// FromUnixMilli converts an epoch in milliseconds, as returned by most market APIs.
func FromUnixMilli(ms float64) time.Time {
	return time.UnixMilli(int64(ms))
}

func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
