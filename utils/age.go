package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDOB parses a registry date of birth in DD-MM-YYYY form.
// Slashes are tolerated because OCR'd dates often arrive as DD/MM/YYYY.
func ParseDOB(dob string) (time.Time, error) {
	dob = strings.TrimSpace(strings.ReplaceAll(dob, "/", "-"))
	parts := strings.Split(dob, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date of birth %q", dob)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q", dob)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in %q", dob)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q", dob)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date of birth %q", dob)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// AgeAt computes completed years between dob and now, decrementing when the
// current month/day precedes the birth month/day.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
