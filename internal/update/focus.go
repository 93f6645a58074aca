package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/model"
	progressfsm "github.com/sandeepkv93/focusd/internal/progress"
)

func (m Model) selectedFocusTask() (model.Task, bool) {
	focused := m.Store.Focused()
	if m.Focus.Cursor < 0 || m.Focus.Cursor >= len(focused) {
		return model.Task{}, false
	}
	return focused[m.Focus.Cursor], true
}

func (m *Model) syncFocusSelection() {
	if task, ok := m.selectedFocusTask(); ok {
		m.SelectedTaskID = task.ID
		return
	}
	m.SelectedTaskID = ""
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.Focus.Cursor = clamp(m.Focus.Cursor+1, 0, len(m.Store.Focused())-1)
		m.syncFocusSelection()
	case "k", "up":
		m.Focus.Cursor = clamp(m.Focus.Cursor-1, 0, len(m.Store.Focused())-1)
		m.syncFocusSelection()
	case "J":
		if task, ok := m.selectedFocusTask(); ok {
			m.Store.ReorderFocus(task.ID, m.Focus.Cursor+1)
			m.Focus.Cursor = clamp(m.Focus.Cursor+1, 0, len(m.Store.Focused())-1)
			m.syncFocusSelection()
			return m.applyMutation("moved down: " + task.Name)
		}
	case "K":
		if task, ok := m.selectedFocusTask(); ok {
			m.Store.ReorderFocus(task.ID, m.Focus.Cursor-1)
			m.Focus.Cursor = clamp(m.Focus.Cursor-1, 0, len(m.Store.Focused())-1)
			m.syncFocusSelection()
			return m.applyMutation("moved up: " + task.Name)
		}
	case "x":
		if task, ok := m.selectedFocusTask(); ok {
			return m.toggleComplete(task)
		}
	case "r":
		if task, ok := m.selectedFocusTask(); ok {
			m.Store.Unfocus(task.ID)
			m.Focus.Cursor = clamp(m.Focus.Cursor, 0, len(m.Store.Focused())-1)
			m.syncFocusSelection()
			return m.applyMutation("removed from focus: " + task.Name)
		}
	case "n":
		m.Backlog.QuickAdd = true
		m.Backlog.QuickAddPull = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "new focus task: type a name, enter to add", IsError: false}
	case "a":
		if _, ok := m.selectedFocusTask(); ok {
			m = m.openAssignPicker()
		}
	case "enter":
		if m.Celebration == progressfsm.StateCelebrating {
			m.Celebration = progressfsm.Dismiss(m.Celebration)
			m.Status = StatusBar{Text: "celebration dismissed", IsError: false}
		}
	}
	return m, nil
}
