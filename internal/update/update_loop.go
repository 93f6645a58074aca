package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	progressfsm "github.com/sandeepkv93/focusd/internal/progress"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if _, cmd := m.loadSnapshot(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if _, cmd := m.loadRoster(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Assign.Active {
			return m.handleAssignKey(typed)
		}
		if m.Backlog.QuickAdd {
			keyStr := typed.String()
			if keyStr != "ctrl+c" {
				return m.handleQuickAddKey(typed)
			}
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Backlog:
			m.CurrentView = ViewBacklog
			m.syncBacklogSelection()
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			m.Focus.Cursor = clamp(m.Focus.Cursor, 0, len(m.Store.Focused())-1)
			m.syncFocusSelection()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		if m.CurrentView == ViewBacklog {
			return m.handleBacklogKey(typed)
		}
		return m.handleFocusKey(typed)

	case spinner.TickMsg:
		if m.saving {
			var cmd tea.Cmd
			m.saveSpinner, cmd = m.saveSpinner.Update(typed)
			return m, cmd
		}
	case SnapshotLoadedMsg:
		return m.onSnapshotLoaded(typed)
	case SaveDoneMsg:
		return m.onSaveDone(typed)
	case RosterLoadedMsg:
		return m.onRosterLoaded(typed)
	case SwitchViewMsg:
		if typed.View == ViewBacklog || typed.View == ViewFocus {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	header := fmt.Sprintf("focusd | keys: %s backlog | %s focus | / commands | %s help | %s quit",
		m.Keys.Backlog, m.Keys.Focus, m.Keys.Help, m.Keys.Quit)

	var body string
	if m.CurrentView == ViewBacklog {
		body = views.RenderBacklogPanel(m.backlogPanelData())
	} else {
		body = views.RenderFocusPanel(m.focusPanelData())
	}

	var overlay string
	switch {
	case m.Palette.Active:
		overlay = "command: " + m.commandInput.View()
	case m.Assign.Active:
		overlay = views.RenderAssignPicker(m.assignPickerData())
	case m.HelpVisible:
		overlay = m.renderHelpView()
	}

	footer := ""
	if m.saving {
		footer = m.saveSpinner.View() + " saving"
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		Body:       body,
		StatusLine: m.Status.Text,
		Overlay:    overlay,
		Footer:     footer,
	})
}

func (m Model) backlogPanelData() views.BacklogPanelData {
	data := views.BacklogPanelData{
		SelectedID:   m.SelectedTaskID,
		QuickAddView: m.quickAddInput.View(),
		QuickAddOpen: m.Backlog.QuickAdd,
	}
	roster := m.Store.Roster()
	for _, bucket := range m.visibleBuckets() {
		day := views.BacklogDayData{
			Label: bucket.Label,
			Date:  bucket.Date.Format("2006-01-02"),
		}
		for _, task := range bucket.Tasks {
			item := views.BacklogTaskData{
				ID:       task.ID,
				Name:     task.Name,
				Complete: task.Complete,
				InFocus:  m.Store.InFocus(task.ID),
			}
			if tag, err := m.Store.Tag(task.TagID); err == nil {
				item.TagColor = tag.Color
			}
			if member, ok := m.Resolver.Assignee(task, roster); ok {
				item.Assignee = member.Name
			}
			for _, sub := range task.Subtasks {
				item.Subtasks = append(item.Subtasks, views.SubtaskData{Name: sub.Name, Complete: sub.Complete})
			}
			day.Tasks = append(day.Tasks, item)
		}
		data.Days = append(data.Days, day)
	}
	return data
}

func (m Model) focusPanelData() views.FocusPanelData {
	data := views.FocusPanelData{
		SelectedID:  m.SelectedTaskID,
		Completed:   m.Snapshot.Completed,
		Total:       m.Snapshot.Total,
		Celebrating: m.Celebration == progressfsm.StateCelebrating,
	}
	if data.Total > 0 {
		data.ProgressView = m.focusProgress.ViewAs(float64(data.Completed) / float64(data.Total))
	}
	roster := m.Store.Roster()
	for _, task := range m.Store.Focused() {
		item := views.FocusTaskData{
			ID:       task.ID,
			Name:     task.Name,
			Complete: task.Complete,
		}
		if tag, err := m.Store.Tag(task.TagID); err == nil {
			item.TagColor = tag.Color
		}
		if member, ok := m.Resolver.Assignee(task, roster); ok {
			item.Assignee = member.Name
		}
		data.Tasks = append(data.Tasks, item)
	}
	return data
}

func (m Model) assignPickerData() views.AssignPickerData {
	data := views.AssignPickerData{
		InputView: m.assignInput.View(),
		Cursor:    m.Assign.Cursor,
	}
	for _, member := range m.Assign.Results {
		data.Results = append(data.Results, member.Name)
	}
	if task, err := m.Store.Get(m.SelectedTaskID); err == nil {
		if member, ok := m.Resolver.Assignee(task, m.Store.Roster()); ok {
			data.Assignee = member.Name
		}
	}
	return data
}
