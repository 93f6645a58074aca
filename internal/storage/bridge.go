package storage

import (
	"sort"

	"github.com/sandeepkv93/focusd/internal/model"
)

// ModelTasks converts a loaded snapshot into engine seed inputs: tasks with
// their subtasks attached, tags, and the focus queue order.
func (s Snapshot) ModelTasks() ([]model.Task, []model.Tag, []string) {
	subsByTask := make(map[string][]Subtask)
	for _, sub := range s.Subtasks {
		subsByTask[sub.TaskID] = append(subsByTask[sub.TaskID], sub)
	}

	tasks := make([]model.Task, 0, len(s.Tasks))
	for _, row := range s.Tasks {
		task := model.Task{
			ID:         row.ID,
			Name:       row.Name,
			TagID:      row.TagID,
			Date:       row.Date,
			Complete:   row.Complete,
			Order:      row.SortOrder,
			AssigneeID: row.AssigneeID,
			CreatedAt:  row.CreatedAt,
		}
		subs := subsByTask[row.ID]
		sort.SliceStable(subs, func(i, j int) bool { return subs[i].Position < subs[j].Position })
		for _, sub := range subs {
			task.Subtasks = append(task.Subtasks, model.Subtask{
				ID:       sub.ID,
				Name:     sub.Name,
				Complete: sub.Complete,
			})
		}
		tasks = append(tasks, task)
	}

	tags := make([]model.Tag, 0, len(s.Tags))
	for _, row := range s.Tags {
		tags = append(tags, model.Tag{
			ID:        row.ID,
			Name:      row.Name,
			Color:     row.Color,
			CreatedAt: row.CreatedAt,
		})
	}

	entries := make([]FocusEntry, len(s.Focus))
	copy(entries, s.Focus)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	focus := make([]string, 0, len(entries))
	for _, entry := range entries {
		focus = append(focus, entry.TaskID)
	}

	return tasks, tags, focus
}

// TaskRecord converts an engine task to its storage rows.
func TaskRecord(t model.Task) (Task, []Subtask) {
	row := Task{
		ID:         t.ID,
		Name:       t.Name,
		TagID:      t.TagID,
		Date:       t.Date,
		Complete:   t.Complete,
		SortOrder:  t.Order,
		AssigneeID: t.AssigneeID,
		CreatedAt:  t.CreatedAt,
	}
	subs := make([]Subtask, 0, len(t.Subtasks))
	for i, sub := range t.Subtasks {
		subs = append(subs, Subtask{
			ID:       sub.ID,
			TaskID:   t.ID,
			Name:     sub.Name,
			Complete: sub.Complete,
			Position: i,
		})
	}
	return row, subs
}

// TagRecord converts an engine tag to its storage row.
func TagRecord(t model.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}
}

// FocusRecord converts a queue order to storage rows.
func FocusRecord(ids []string) []FocusEntry {
	out := make([]FocusEntry, 0, len(ids))
	for i, id := range ids {
		out = append(out, FocusEntry{TaskID: id, Position: i})
	}
	return out
}
