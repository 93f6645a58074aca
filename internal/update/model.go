package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
	progressfsm "github.com/sandeepkv93/focusd/internal/progress"
	"github.com/sandeepkv93/focusd/internal/roster"
	"github.com/sandeepkv93/focusd/internal/storage"
)

type View string

const (
	ViewBacklog View = "Backlog"
	ViewFocus   View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Backlog string
	Focus   string
	Help    string
	Quit    string
}

type BacklogState struct {
	WeekStart  time.Time
	DayCursor  int
	TaskCursor int
	QuickAdd   bool
	// QuickAddPull marks a quick-add opened from the focus view: the new
	// task is pulled into the focus queue at creation.
	QuickAddPull bool
}

type FocusState struct {
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type AssignPickerState struct {
	Active  bool
	Query   string
	Cursor  int
	Results []model.Member
}

// RosterFetcher supplies the group's member roster. It may block; results
// are delivered back into the update loop as a RosterLoadedMsg.
type RosterFetcher func() ([]model.Member, error)

// ioState carries the mutation journal and the async request sequence
// counters. It lives behind a pointer so it survives bubbletea's
// value-copied models: a sequence issued inside Init or a key handler must
// still be the latest when its completion message arrives.
type ioState struct {
	pending []engine.Mutation
	// saveQueued marks a save requested while another was in flight; the
	// follow-up is dispatched when the in-flight save completes.
	saveQueued bool
	loadSeq    uint64
	saveSeq    uint64
	rosterSeq  uint64
}

func (s *ioState) record(m engine.Mutation) {
	s.pending = append(s.pending, m)
}

func (s *ioState) drain() []engine.Mutation {
	out := s.pending
	s.pending = nil
	return out
}

type Model struct {
	Store    *engine.Store
	Resolver *roster.Resolver
	Repo     storage.Repository
	Writer   *storage.Writer

	CurrentView    View
	SelectedTaskID string
	Backlog        BacklogState
	Focus          FocusState
	Celebration    progressfsm.State
	Snapshot       progressfsm.Snapshot
	Palette        CommandPaletteState
	Assign         AssignPickerState
	Status         StatusBar
	Keys           GlobalKeyMap
	HelpVisible    bool
	Quitting       bool
	LastError      error
	Loaded         bool

	fetchRoster RosterFetcher
	io          *ioState
	saving      bool
	now         func() time.Time

	// Bubble components used for rich TUI controls
	quickAddInput textinput.Model
	commandInput  textinput.Model
	assignInput   textinput.Model
	focusProgress progress.Model
	saveSpinner   spinner.Model
	helpModel     help.Model
}

func NewModel() Model {
	return NewModelWithConfig(DefaultRuntimeConfig(), nil, nil)
}

func NewModelWithRepo(repo storage.Repository) Model {
	return NewModelWithConfig(DefaultRuntimeConfig(), repo, nil)
}

func NewModelWithConfig(cfg RuntimeConfig, repo storage.Repository, fetch RosterFetcher) Model {
	store := engine.NewStore()
	io := &ioState{}
	store.Subscribe(io.record)
	store.SetRoster(DefaultRoster())
	if repo == nil {
		// no persistence: seed the starter palette directly
		for _, tag := range model.DefaultTags(time.Now().UTC()) {
			_ = store.UpsertTag(tag)
		}
	}
	io.drain()

	quickAdd := textinput.New()
	quickAdd.Placeholder = "task name"
	quickAdd.CharLimit = 120

	command := textinput.New()
	command.Placeholder = "add | pull | drop | done | move | tag | assign | sub"
	command.CharLimit = 200

	assign := textinput.New()
	assign.Placeholder = "member name"
	assign.CharLimit = 80

	m := Model{
		Store:       store,
		Resolver:    roster.New(store),
		Repo:        repo,
		CurrentView: ViewBacklog,
		Celebration: progressfsm.StateIdle,
		Keys: GlobalKeyMap{
			Backlog: "1",
			Focus:   "2",
			Help:    "?",
			Quit:    "q",
		},
		fetchRoster:   fetch,
		io:            io,
		now:           time.Now,
		quickAddInput: quickAdd,
		commandInput:  command,
		assignInput:   assign,
		focusProgress: progress.New(progress.WithDefaultGradient()),
		saveSpinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		helpModel:     help.New(),
	}
	if repo != nil {
		m.Writer = storage.NewWriter(repo)
	}
	if cfg.GroupMode && m.fetchRoster == nil {
		m.fetchRoster = func() ([]model.Member, error) { return DefaultRoster(), nil }
	}
	m.Backlog.WeekStart = weekStart(m.now())
	return m
}

// DefaultRoster is the built-in demo roster used when no group service is
// wired up.
func DefaultRoster() []model.Member {
	return []model.Member{
		{ID: "dl123", Name: "Darien Lopez"},
		{ID: "sj234", Name: "Sarah Johnson"},
		{ID: "mp678", Name: "Michelle Parker"},
		{ID: "sj99", Name: "Sarah Jo"},
	}
}

// recompute refreshes the derived progress snapshot and advances the
// celebration state machine. Called after every mutation that can change
// the focus queue.
func (m *Model) recompute() {
	m.Snapshot = progressfsm.Count(m.Store.Focused())
	m.Celebration = progressfsm.Next(m.Celebration, m.Snapshot)
}
