package client

import (
	"strconv"
	"strings"
	"time"
)

type AgeMode string

const (
	// AgeModeBirthYear matches the reported age: current year minus birth year.
	AgeModeBirthYear AgeMode = "birth_year"
	// AgeModeLegacy treats every year as 365 days counted back from today.
	AgeModeLegacy AgeMode = "legacy"
)

type AgeRange struct {
	Low  int
	High int
}

// ParseAgeRange reads "low-high". Anything malformed yields ok=false and the
// caller skips the filter.
func ParseAgeRange(s string) (AgeRange, bool) {
	lowS, highS, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		return AgeRange{}, false
	}

	low, err := strconv.Atoi(strings.TrimSpace(lowS))
	if err != nil {
		return AgeRange{}, false
	}
	high, err := strconv.Atoi(strings.TrimSpace(highS))
	if err != nil {
		return AgeRange{}, false
	}
	if low < 0 || high < low {
		return AgeRange{}, false
	}

	return AgeRange{Low: low, High: high}, true
}

// DOBWindow returns the inclusive date-of-birth bounds for the range.
func (r AgeRange) DOBWindow(now time.Time, mode AgeMode) (from, to time.Time) {
	loc := now.Location()

	if mode == AgeModeLegacy {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		from = today.AddDate(0, 0, -365*(r.High+1)+1)
		to = today.AddDate(0, 0, -365*r.Low)
		return from, to
	}

	from = time.Date(now.Year()-r.High, time.January, 1, 0, 0, 0, 0, loc)
	to = time.Date(now.Year()-r.Low, time.December, 31, 0, 0, 0, 0, loc)
	return from, to
}

// Age is the current year minus the birth year.
func Age(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ===============================
// Search
// ===============================

type SearchFilter struct {
	Name      string
	ProgramID *uint

	DOBFrom *time.Time
	DOBTo   *time.Time
}

// NewSearchFilter normalizes raw query input. Unparseable program and age
// values drop the corresponding filter.
func NewSearchFilter(name, program, age string, now time.Time, mode AgeMode) SearchFilter {
	f := SearchFilter{Name: strings.TrimSpace(name)}

	if id, err := strconv.ParseUint(strings.TrimSpace(program), 10, 64); err == nil && id > 0 {
		pid := uint(id)
		f.ProgramID = &pid
	}

	if r, ok := ParseAgeRange(age); ok {
		from, to := r.DOBWindow(now, mode)
		f.DOBFrom, f.DOBTo = &from, &to
	}

	return f
}
