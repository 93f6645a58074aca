package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

// Async boundaries (persistence load/save, roster fetch) tag every request
// with a monotonically increasing sequence number. A completion whose
// sequence is not the latest issued for its kind is stale and discarded:
// applying it could resurrect deleted data.

type SnapshotLoadedMsg struct {
	Seq   uint64
	Tasks []model.Task
	Tags  []model.Tag
	Focus []string
	Err   error
}

type SaveDoneMsg struct {
	Seq uint64
	Err error
}

type RosterLoadedMsg struct {
	Seq     uint64
	Members []model.Member
	Err     error
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func (m Model) loadSnapshot() (Model, tea.Cmd) {
	if m.Repo == nil {
		return m, nil
	}
	m.io.loadSeq++
	seq := m.io.loadSeq
	repo := m.Repo
	return m, func() tea.Msg {
		snap, err := repo.LoadSnapshot(context.Background())
		if err != nil {
			return SnapshotLoadedMsg{Seq: seq, Err: err}
		}
		tasks, tags, focus := snap.ModelTasks()
		return SnapshotLoadedMsg{Seq: seq, Tasks: tasks, Tags: tags, Focus: focus}
	}
}

func (m Model) loadRoster() (Model, tea.Cmd) {
	if m.fetchRoster == nil {
		return m, nil
	}
	m.io.rosterSeq++
	seq := m.io.rosterSeq
	fetch := m.fetchRoster
	return m, func() tea.Msg {
		members, err := fetch()
		return RosterLoadedMsg{Seq: seq, Members: members, Err: err}
	}
}

// scheduleSave flushes pending mutations and the focus queue order to the
// persistence collaborator in the background. At most one save runs at a
// time: bubbletea executes commands on separate goroutines, so two
// in-flight batches could apply out of order and an old write would land
// after the newer one that superseded it. Mutations arriving while a save
// is in flight stay journaled; onSaveDone dispatches the follow-up.
func (m Model) scheduleSave() (Model, tea.Cmd) {
	if m.Writer == nil {
		m.io.drain()
		return m, nil
	}
	if m.saving {
		m.io.saveQueued = true
		return m, nil
	}
	// focus-only changes produce an empty batch but still need the queue
	// order persisted
	batch := m.io.drain()
	focus := m.Store.FocusIDs()
	m.io.saveQueued = false
	m.io.saveSeq++
	seq := m.io.saveSeq
	writer := m.Writer
	m.saving = true
	cmd := func() tea.Msg {
		ctx := context.Background()
		for _, mutation := range batch {
			if err := writer.Apply(ctx, mutation); err != nil {
				return SaveDoneMsg{Seq: seq, Err: err}
			}
		}
		if err := writer.SaveFocus(ctx, focus); err != nil {
			return SaveDoneMsg{Seq: seq, Err: err}
		}
		return SaveDoneMsg{Seq: seq}
	}
	return m, tea.Batch(cmd, m.saveSpinner.Tick)
}

func (m Model) onSnapshotLoaded(msg SnapshotLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.io.loadSeq {
		return m, nil
	}
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: "load error: " + msg.Err.Error(), IsError: true}
		return m, nil
	}
	m.Store.Seed(msg.Tasks, msg.Tags, msg.Focus)
	m.io.drain()
	m.Loaded = true
	if len(msg.Tags) == 0 {
		for _, tag := range model.DefaultTags(model.Day(m.now())) {
			_ = m.Store.UpsertTag(tag)
		}
		return m.applyMutation("seeded starter tags")
	}
	m.recompute()
	m.Status = StatusBar{Text: "loaded", IsError: false}
	return m, nil
}

func (m Model) onSaveDone(msg SaveDoneMsg) (Model, tea.Cmd) {
	if msg.Seq != m.io.saveSeq {
		return m, nil
	}
	m.saving = false
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: "save error: " + msg.Err.Error(), IsError: true}
	}
	if m.io.saveQueued || len(m.io.pending) > 0 {
		return m.scheduleSave()
	}
	return m, nil
}

func (m Model) onRosterLoaded(msg RosterLoadedMsg) (Model, tea.Cmd) {
	if msg.Seq != m.io.rosterSeq {
		return m, nil
	}
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: "roster error: " + msg.Err.Error(), IsError: true}
		return m, nil
	}
	m.Store.SetRoster(msg.Members)
	return m, nil
}

// applyMutation is the common tail of every mutating handler: refresh the
// derived views, set a status line, and flush to persistence.
func (m Model) applyMutation(status string) (Model, tea.Cmd) {
	m.recompute()
	m.Status = StatusBar{Text: status, IsError: false}
	return m.scheduleSave()
}

// reportError surfaces a recoverable engine failure in the status bar.
func (m Model) reportError(err error) Model {
	m.LastError = err
	m.Status = StatusBar{Text: "error: " + engineErrorText(err), IsError: true}
	return m
}

func engineErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrNotFound):
		return "task not found"
	default:
		return err.Error()
	}
}
