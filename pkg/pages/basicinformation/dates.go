package basicinformation

import (
	"fmt"
	"strconv"
	"time"
)

// isoDate assembles year/month/day form parts into an ISO 8601 date string.
// Returns "" when any part is missing or non-numeric; callers distinguish
// "missing" from "invalid" by validating the assembled value separately.
func isoDate(year, month, day string) string {
	if year == "" || month == "" || day == "" {
		return ""
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return ""
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func validDate(iso string) bool {
	_, err := time.Parse("2006-01-02", iso)
	return err == nil
}

// prettyDate renders an ISO date for check-your-answers summaries,
// e.g. "Thursday 3 March 2022". Falls back to the raw value when unparsable.
func prettyDate(iso string) string {
	parsed, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return parsed.Format("Monday 2 January 2006")
}
