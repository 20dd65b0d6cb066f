package timezone

import "time"

const DefaultTimezone = "Africa/Nairobi"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock yields the clinic's current time. Use cases take a Clock so tests can
// pin "now".
type Clock interface {
	Now() time.Time
}

type clinicClock struct {
	loc *time.Location
}

func NewClock(tz string) Clock {
	return clinicClock{loc: Location(tz)}
}

func (c clinicClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (f FixedClock) Now() time.Time { return f.T }

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns midnight of the clock's current day.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}
