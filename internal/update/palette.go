package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	next := m
	var teaCmd tea.Cmd
	_, err = commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			next, teaCmd = next.addTask(a.Title, next.selectedDay(), false)
			return commands.Result{Message: "added"}, nil
		},
		Pull: func(a commands.PullArgs) (commands.Result, error) {
			id := a.TaskID
			if id == "" {
				id = next.SelectedTaskID
			}
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			if err := next.Store.Pull(id); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			next, teaCmd = next.applyMutation("pulled into focus")
			return commands.Result{Message: "pulled"}, nil
		},
		Drop: func(a commands.DropArgs) (commands.Result, error) {
			id := a.TaskID
			if id == "" {
				id = next.SelectedTaskID
			}
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			next.Store.Unfocus(id)
			next, teaCmd = next.applyMutation("removed from focus")
			return commands.Result{Message: "dropped"}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			id := a.TaskID
			if id == "" {
				id = next.SelectedTaskID
			}
			task, err := next.Store.Get(id)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			next, teaCmd = next.toggleComplete(task)
			return commands.Result{Message: "toggled"}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			id := next.SelectedTaskID
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			date, err := parseWhen(a.When, next.now())
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if _, err := next.Store.Update(id, engine.Patch{Date: &date}); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			next, teaCmd = next.applyMutation("moved to " + date.Format("2006-01-02"))
			return commands.Result{Message: "moved"}, nil
		},
		Tag: func(a commands.TagArgs) (commands.Result, error) {
			switch a.Action {
			case "new":
				tag := model.Tag{ID: model.NewID(), Name: a.Name, Color: a.Color, CreatedAt: next.now()}
				if err := next.Store.UpsertTag(tag); err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
				}
				next, teaCmd = next.applyMutation("created tag " + tag.Name)
				return commands.Result{Message: "tag created"}, nil
			case "rm":
				tag, ok := next.findTagByName(a.Name)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown tag %q", a.Name)}
				}
				if err := next.Store.RemoveTag(tag.ID); err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
				}
				next, teaCmd = next.applyMutation("removed tag " + tag.Name)
				return commands.Result{Message: "tag removed"}, nil
			}
			id := next.SelectedTaskID
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			tag, ok := next.findTagByName(a.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown tag %q", a.Name)}
			}
			if _, err := next.Store.Update(id, engine.Patch{TagID: &tag.ID}); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			next, teaCmd = next.applyMutation("tagged " + tag.Name)
			return commands.Result{Message: "tagged"}, nil
		},
		Sub: func(a commands.SubArgs) (commands.Result, error) {
			id := next.SelectedTaskID
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			task, err := next.Store.Get(id)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			subs := make([]model.Subtask, len(task.Subtasks))
			copy(subs, task.Subtasks)
			status := ""
			switch a.Action {
			case "add":
				subs = append(subs, model.Subtask{Name: a.Name})
				status = "subtask added"
			case "done", "rm", "rename":
				if a.Index < 1 || a.Index > len(subs) {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no subtask %d", a.Index)}
				}
				switch a.Action {
				case "done":
					subs[a.Index-1].Complete = !subs[a.Index-1].Complete
					status = "subtask toggled"
				case "rm":
					subs = append(subs[:a.Index-1], subs[a.Index:]...)
					status = "subtask removed"
				case "rename":
					subs[a.Index-1].Name = a.Name
					status = "subtask renamed"
				}
			}
			if _, err := next.Store.Update(id, engine.Patch{Subtasks: &subs}); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			next, teaCmd = next.applyMutation(status)
			return commands.Result{Message: status}, nil
		},
		Assign: func(a commands.AssignArgs) (commands.Result, error) {
			id := next.SelectedTaskID
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
			}
			matches := next.Resolver.Search(a.Query, next.Store.Roster())
			if len(matches) == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no member matches %q", a.Query)}
			}
			if _, err := next.Resolver.Assign(id, matches[0].ID); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: engineErrorText(err)}
			}
			next, teaCmd = next.applyMutation("assigned to " + matches[0].Name)
			return commands.Result{Message: "assigned"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	return next, teaCmd
}

func (m Model) findTagByName(name string) (model.Tag, bool) {
	for _, tag := range m.Store.Tags() {
		if strings.EqualFold(tag.Name, name) {
			return tag, true
		}
	}
	return model.Tag{}, false
}
