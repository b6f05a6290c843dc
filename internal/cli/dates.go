package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Matches: "2h ago", "30m ago", "1d ago", "2w ago", "1mo ago"
var relativeAgoRegex = regexp.MustCompile(`^(\d+)(mo|w|d|h|m)\s*ago$`)

// Bare forms: "30m", "2h", "1d" are shorthand for the same offsets.
var relativeBareRegex = regexp.MustCompile(`^(\d+)(mo|w|d|h|m)$`)

// ParseTimeFilter parses human-friendly time expressions for list filters.
// Supports: "2h ago" (bare "2h" means the same), "yesterday", "monday",
// "last tue", "2026-01-27", RFC3339. Weekday names resolve to their most
// recent occurrence since filters look backward.
func ParseTimeFilter(s string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	input := strings.ToLower(raw)

	switch input {
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1), nil
	case "today":
		return startOfDay(now), nil
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), nil
	}

	if t, ok := parseWeekday(input, now); ok {
		return t, nil
	}

	if matches := relativeAgoRegex.FindStringSubmatch(input); len(matches) == 3 {
		value, err := strconv.Atoi(matches[1])
		if err != nil || value < 1 {
			return time.Time{}, fmt.Errorf("invalid relative time %q", raw)
		}
		return applyRelative(now, value, matches[2])
	}

	if matches := relativeBareRegex.FindStringSubmatch(input); len(matches) == 3 {
		value, err := strconv.Atoi(matches[1])
		if err != nil || value < 1 {
			return time.Time{}, fmt.Errorf("invalid relative time %q", raw)
		}
		return applyRelative(now, value, matches[2])
	}

	if t, err := time.ParseInLocation("2006-01-02", raw, now.Location()); err == nil {
		return startOfDay(t), nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time expression %q", raw)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseWeekday resolves a weekday name to its most recent occurrence.
// Today counts; "last <day>" always goes at least a day back.
func parseWeekday(expr string, now time.Time) (time.Time, bool) {
	input := strings.TrimSpace(expr)
	if input == "" {
		return time.Time{}, false
	}

	strict := false
	if strings.HasPrefix(input, "last ") {
		strict = true
		input = strings.TrimSpace(strings.TrimPrefix(input, "last "))
	} else if strings.HasPrefix(input, "this ") {
		input = strings.TrimSpace(strings.TrimPrefix(input, "this "))
	}

	weekday, ok := weekdayMap[input]
	if !ok {
		return time.Time{}, false
	}

	base := startOfDay(now)
	delta := (int(base.Weekday()) - int(weekday) + 7) % 7
	if strict && delta == 0 {
		delta = 7
	}

	return base.AddDate(0, 0, -delta), true
}

var weekdayMap = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"weds":      time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

func applyRelative(now time.Time, value int, unit string) (time.Time, error) {
	if value < 1 {
		return time.Time{}, fmt.Errorf("invalid relative time")
	}

	switch unit {
	case "mo":
		return now.AddDate(0, -value, 0), nil
	case "w":
		return now.Add(-time.Duration(value) * 7 * 24 * time.Hour), nil
	case "d":
		return now.Add(-time.Duration(value) * 24 * time.Hour), nil
	case "h":
		return now.Add(-time.Duration(value) * time.Hour), nil
	case "m":
		return now.Add(-time.Duration(value) * time.Minute), nil
	default:
		return time.Time{}, fmt.Errorf("invalid relative time unit %q", unit)
	}
}
