package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) visibleBuckets() []engine.Bucket {
	from := m.Backlog.WeekStart
	return m.Store.BucketsFor(from, from.AddDate(0, 0, 6))
}

func (m Model) selectedBacklogTask() (model.Task, bool) {
	buckets := m.visibleBuckets()
	if m.Backlog.DayCursor < 0 || m.Backlog.DayCursor >= len(buckets) {
		return model.Task{}, false
	}
	tasks := buckets[m.Backlog.DayCursor].Tasks
	if m.Backlog.TaskCursor < 0 || m.Backlog.TaskCursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Backlog.TaskCursor], true
}

func (m *Model) syncBacklogSelection() {
	if task, ok := m.selectedBacklogTask(); ok {
		m.SelectedTaskID = task.ID
		return
	}
	m.SelectedTaskID = ""
}

func (m Model) handleBacklogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Backlog.QuickAdd {
		return m.handleQuickAddKey(msg)
	}

	switch msg.String() {
	case "h", "left":
		m.Backlog.DayCursor = clamp(m.Backlog.DayCursor-1, 0, 6)
		m.Backlog.TaskCursor = 0
		m.syncBacklogSelection()
	case "l", "right":
		m.Backlog.DayCursor = clamp(m.Backlog.DayCursor+1, 0, 6)
		m.Backlog.TaskCursor = 0
		m.syncBacklogSelection()
	case "j", "down":
		buckets := m.visibleBuckets()
		limit := len(buckets[m.Backlog.DayCursor].Tasks) - 1
		m.Backlog.TaskCursor = clamp(m.Backlog.TaskCursor+1, 0, limit)
		m.syncBacklogSelection()
	case "k", "up":
		buckets := m.visibleBuckets()
		limit := len(buckets[m.Backlog.DayCursor].Tasks) - 1
		m.Backlog.TaskCursor = clamp(m.Backlog.TaskCursor-1, 0, limit)
		m.syncBacklogSelection()
	case "[":
		m.Backlog.WeekStart = m.Backlog.WeekStart.AddDate(0, 0, -7)
		m.Backlog.TaskCursor = 0
		m.syncBacklogSelection()
	case "]":
		m.Backlog.WeekStart = m.Backlog.WeekStart.AddDate(0, 0, 7)
		m.Backlog.TaskCursor = 0
		m.syncBacklogSelection()
	case "n":
		m.Backlog.QuickAdd = true
		m.Backlog.QuickAddPull = false
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "new task: type a name, enter to add", IsError: false}
	case "p":
		if task, ok := m.selectedBacklogTask(); ok {
			if err := m.Store.Pull(task.ID); err != nil {
				return m.reportError(err), nil
			}
			return m.applyMutation("pulled into focus: " + task.Name)
		}
	case "x":
		if task, ok := m.selectedBacklogTask(); ok {
			return m.toggleComplete(task)
		}
	case "d":
		if task, ok := m.selectedBacklogTask(); ok {
			if err := m.Store.Delete(task.ID); err != nil {
				return m.reportError(err), nil
			}
			buckets := m.visibleBuckets()
			limit := len(buckets[m.Backlog.DayCursor].Tasks) - 1
			m.Backlog.TaskCursor = clamp(m.Backlog.TaskCursor, 0, limit)
			m.syncBacklogSelection()
			return m.applyMutation("deleted: " + task.Name)
		}
	case "a":
		if _, ok := m.selectedBacklogTask(); ok {
			m = m.openAssignPicker()
		}
	}
	return m, nil
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Backlog.QuickAdd = false
		m.Backlog.QuickAddPull = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "add cancelled", IsError: false}
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.quickAddInput.Value())
		if name == "" {
			m.Status = StatusBar{Text: "name required", IsError: true}
			return m, nil
		}
		pull := m.Backlog.QuickAddPull
		m.Backlog.QuickAdd = false
		m.Backlog.QuickAddPull = false
		m.quickAddInput.Blur()
		m.quickAddInput.SetValue("")
		return m.addTask(name, m.selectedDay(), pull)
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	return m, cmd
}

func (m Model) selectedDay() time.Time {
	return m.Backlog.WeekStart.AddDate(0, 0, m.Backlog.DayCursor)
}

func (m Model) addTask(name string, date time.Time, pull bool) (Model, tea.Cmd) {
	task, err := m.Store.Create(engine.CreateInput{Name: name, Date: date, Focus: pull})
	if err != nil {
		return m.reportError(err), nil
	}
	m.SelectedTaskID = task.ID
	return m.applyMutation("added: " + task.Name)
}

func (m Model) toggleComplete(task model.Task) (Model, tea.Cmd) {
	next := !task.Complete
	if _, err := m.Store.Update(task.ID, engine.Patch{Complete: &next}); err != nil {
		return m.reportError(err), nil
	}
	verb := "reopened"
	if next {
		verb = "completed"
	}
	return m.applyMutation(verb + ": " + task.Name)
}
