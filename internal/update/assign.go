package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) openAssignPicker() Model {
	m.Assign.Active = true
	m.Assign.Query = ""
	m.Assign.Cursor = 0
	m.Assign.Results = m.Resolver.Search("", m.Store.Roster())
	m.assignInput.SetValue("")
	m.assignInput.Focus()
	m.Status = StatusBar{Text: "assign: type to search members", IsError: false}
	return m
}

func (m Model) closeAssignPicker() Model {
	m.Assign.Active = false
	m.Assign.Query = ""
	m.Assign.Results = nil
	m.assignInput.Blur()
	return m
}

func (m Model) handleAssignKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeAssignPicker()
		m.Status = StatusBar{Text: "assign cancelled", IsError: false}
		return m, nil
	case "up":
		m.Assign.Cursor = clamp(m.Assign.Cursor-1, 0, len(m.Assign.Results)-1)
		return m, nil
	case "down":
		m.Assign.Cursor = clamp(m.Assign.Cursor+1, 0, len(m.Assign.Results)-1)
		return m, nil
	case "enter":
		if m.Assign.Cursor < 0 || m.Assign.Cursor >= len(m.Assign.Results) {
			return m, nil
		}
		member := m.Assign.Results[m.Assign.Cursor]
		taskID := m.SelectedTaskID
		m = m.closeAssignPicker()
		if _, err := m.Resolver.Assign(taskID, member.ID); err != nil {
			return m.reportError(err), nil
		}
		return m.applyMutation("assigned to " + member.Name)
	}

	var cmd tea.Cmd
	m.assignInput, cmd = m.assignInput.Update(msg)
	query := m.assignInput.Value()
	if query != m.Assign.Query {
		m.Assign.Query = query
		m.Assign.Results = m.Resolver.Search(query, m.Store.Roster())
		m.Assign.Cursor = 0
	}
	return m, cmd
}
