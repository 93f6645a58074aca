package engine

import (
	"sort"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Bucket is one backlog day: the tasks whose Date falls on it, in store
// insertion order.
type Bucket struct {
	Date  time.Time
	Label string
	Tasks []model.Task
}

var weekdayLabels = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// WeekdayLabel maps standard calendar weekday numbering (Sunday=0) to its
// three-letter backlog header. An index outside [0,6] means the date it came
// from is corrupted, which is a fatal precondition violation.
func WeekdayLabel(idx int) string {
	if idx < 0 || idx > 6 {
		violated("weekday index %d out of range [0,6]", idx)
	}
	return weekdayLabels[idx]
}

// BucketsFor recomputes the backlog between from and to, inclusive, fresh
// from the store. Days with no tasks still get a bucket so the view can show
// an empty column.
func (s *Store) BucketsFor(from, to time.Time) []Bucket {
	from = model.Day(from)
	to = model.Day(to)
	if to.Before(from) {
		return nil
	}

	byDay := make(map[time.Time][]model.Task)
	for _, task := range s.tasks {
		day := task.Date
		if day.Before(from) || day.After(to) {
			continue
		}
		byDay[day] = append(byDay[day], task.Clone())
	}

	var out []Bucket
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		tasks := byDay[day]
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Order < tasks[j].Order
		})
		out = append(out, Bucket{
			Date:  day,
			Label: WeekdayLabel(int(day.Weekday())),
			Tasks: tasks,
		})
	}
	return out
}
