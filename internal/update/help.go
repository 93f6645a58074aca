package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focusd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `# focusd

A weekly backlog plus a hand-curated focus list.

- Tasks live in day buckets; pull the ones you commit to into **Focus**.
- Finish everything in Focus and you get a small celebration.
- Open the command palette with ` + "`/`" + ` for quick actions:
  ` + "`add`" + `, ` + "`pull`" + `, ` + "`drop`" + `, ` + "`done`" + `, ` + "`move`" + `, ` + "`tag`" + `, ` + "`assign`" + `, ` + "`sub`" + `.
- Manage tags with ` + "`tag new <name> <color>`" + ` and ` + "`tag rm <name>`" + `.
- Edit the selected task's checklist with ` + "`sub add <name>`" + `,
  ` + "`sub done <n>`" + `, ` + "`sub rm <n>`" + `, ` + "`sub rename <n> <name>`" + `.
`

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Backlog, Action: "switch to Backlog"},
		{Key: m.Keys.Focus, Action: "switch to Focus"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewBacklog:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "j/k", Action: "move task cursor"},
			{Key: "[/]", Action: "previous/next week"},
			{Key: "n", Action: "quick add task"},
			{Key: "p", Action: "pull task into focus"},
			{Key: "x", Action: "toggle complete"},
			{Key: "d", Action: "delete task"},
			{Key: "a", Action: "assign member"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "n", Action: "quick add into focus"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "reorder task down/up"},
			{Key: "x", Action: "toggle complete"},
			{Key: "r", Action: "return task to backlog"},
			{Key: "a", Action: "assign member"},
			{Key: "enter", Action: "dismiss celebration"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	var b strings.Builder
	b.WriteString(views.RenderMarkdown(helpMarkdown))
	b.WriteString("\n")
	b.WriteString(strings.Join(plain, "\n"))
	b.WriteString("\n\n")
	b.WriteString(m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
	return b.String()
}
