package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// weekStart returns the Sunday that begins the week containing t.
func weekStart(t time.Time) time.Time {
	day := model.Day(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// parseWhen resolves a palette date argument: today, tomorrow, or an
// explicit YYYY-MM-DD.
func parseWhen(when string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(when)) {
	case "today":
		return model.Day(now), nil
	case "tomorrow":
		return model.Day(now).AddDate(0, 0, 1), nil
	}
	parsed, err := time.Parse("2006-01-02", when)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q (use today, tomorrow, or YYYY-MM-DD)", when)
	}
	return model.Day(parsed), nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
