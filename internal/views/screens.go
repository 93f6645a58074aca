package views

import (
	"fmt"
	"strings"
)

type BacklogTaskData struct {
	ID       string
	Name     string
	TagColor string
	Complete bool
	InFocus  bool
	Assignee string
	Subtasks []SubtaskData
}

type SubtaskData struct {
	Name     string
	Complete bool
}

type BacklogDayData struct {
	Label string
	Date  string
	Tasks []BacklogTaskData
}

type BacklogPanelData struct {
	Days         []BacklogDayData
	SelectedID   string
	QuickAddView string
	QuickAddOpen bool
}

type FocusTaskData struct {
	ID       string
	Name     string
	TagColor string
	Complete bool
	Assignee string
}

type FocusPanelData struct {
	Tasks        []FocusTaskData
	SelectedID   string
	Completed    int
	Total        int
	ProgressView string
	Celebrating  bool
}

type AssignPickerData struct {
	InputView string
	Results   []string
	Cursor    int
	Assignee  string
}

func RenderBacklogPanel(data BacklogPanelData) string {
	var b strings.Builder
	b.WriteString("backlog:\n")
	b.WriteString("actions: [h/l]day [j/k]task [n]new [p]pull [x]done [d]delete [a]assign\n")
	if data.QuickAddOpen {
		b.WriteString("new task: " + data.QuickAddView + "\n")
	}
	for _, day := range data.Days {
		b.WriteString(dayHeadStyle.Render(fmt.Sprintf("%s %s", day.Label, day.Date)) + "\n")
		if len(day.Tasks) == 0 {
			b.WriteString(dimStyle.Render("  (no tasks)") + "\n")
			continue
		}
		for _, task := range day.Tasks {
			b.WriteString(renderBacklogTask(task, task.ID == data.SelectedID))
		}
	}
	return strings.TrimSpace(b.String())
}

func renderBacklogTask(task BacklogTaskData, selected bool) string {
	var b strings.Builder
	cursor := "  "
	if selected {
		cursor = selectStyle.Render("> ")
	}
	box := "[ ]"
	if task.Complete {
		box = "[x]"
	}
	name := task.Name
	if selected {
		name = selectStyle.Render(name)
	}
	line := fmt.Sprintf("%s%s %s %s", cursor, box, TagDot(task.TagColor), name)
	if task.InFocus {
		line += " ★"
	}
	if task.Assignee != "" {
		line += dimStyle.Render(" @" + task.Assignee)
	}
	b.WriteString(line + "\n")
	// subtask positions are 1-based to line up with the palette's sub command
	for i, sub := range task.Subtasks {
		subBox := "[ ]"
		if sub.Complete {
			subBox = "[x]"
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("      %d. %s %s", i+1, subBox, sub.Name)) + "\n")
	}
	return b.String()
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	b.WriteString("actions: [n]new [j/k]move [J/K]reorder [x]done [r]remove [enter]dismiss\n")
	if data.Celebrating {
		b.WriteString(bannerStyle.Render("All focused tasks complete! Great work!") + "\n")
	}
	b.WriteString(fmt.Sprintf("progress: %d/%d\n", data.Completed, data.Total))
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	if len(data.Tasks) == 0 {
		b.WriteString(dimStyle.Render("focus queue is empty; pull tasks from the backlog with p") + "\n")
	}
	for i, task := range data.Tasks {
		cursor := "  "
		name := task.Name
		if task.ID == data.SelectedID {
			cursor = selectStyle.Render("> ")
			name = selectStyle.Render(name)
		}
		box := "[ ]"
		if task.Complete {
			box = "[x]"
		}
		line := fmt.Sprintf("%s%d. %s %s %s", cursor, i+1, box, TagDot(task.TagColor), name)
		if task.Assignee != "" {
			line += dimStyle.Render(" @" + task.Assignee)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderAssignPicker(data AssignPickerData) string {
	var b strings.Builder
	b.WriteString("assign to: " + data.InputView + "\n")
	if data.Assignee != "" {
		b.WriteString(dimStyle.Render("currently assigned: "+data.Assignee) + "\n")
	}
	if len(data.Results) == 0 {
		b.WriteString(dimStyle.Render("no matching members") + "\n")
	}
	for i, name := range data.Results {
		cursor := "  "
		if i == data.Cursor {
			cursor = selectStyle.Render("> ")
			name = selectStyle.Render(name)
		}
		b.WriteString(cursor + name + "\n")
	}
	b.WriteString(dimStyle.Render("[enter]assign [esc]cancel"))
	return strings.TrimSpace(b.String())
}
