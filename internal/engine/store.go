package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Store is the single source of truth for tasks, tags, and the focus queue.
// Derived views (backlog buckets, focus list, progress counts) are recomputed
// from it on every read and never cached.
//
// The store is meant to be driven from a single event loop; mutations are
// synchronous and atomic from the caller's perspective, and there is no
// internal locking.
type Store struct {
	tasks     []*model.Task
	byID      map[string]*model.Task
	tags      map[string]model.Tag
	tagOrder  []string
	focus     []string
	roster    []model.Member
	rosterIDs map[string]bool
	nextOrder int
	now       func() time.Time
	newID     func() string
	hooks     []func(Mutation)
}

type MutationKind string

const (
	MutationCreate    MutationKind = "create"
	MutationUpdate    MutationKind = "update"
	MutationDelete    MutationKind = "delete"
	MutationTagUpsert MutationKind = "tag_upsert"
	MutationTagRemove MutationKind = "tag_remove"
)

// Mutation is one entry in the event stream the persistence collaborator
// subscribes to.
type Mutation struct {
	Kind MutationKind
	Task model.Task
	Tag  model.Tag
	ID   string
}

func NewStore() *Store {
	return &Store{
		byID:      make(map[string]*model.Task),
		tags:      make(map[string]model.Tag),
		rosterIDs: make(map[string]bool),
		now:       time.Now,
		newID:     model.NewID,
	}
}

// NewStoreAt pins the store's clock and id source, for tests.
func NewStoreAt(now func() time.Time, newID func() string) *Store {
	s := NewStore()
	if now != nil {
		s.now = now
	}
	if newID != nil {
		s.newID = newID
	}
	return s
}

// Subscribe registers a mutation hook. Hooks run synchronously after the
// mutation is applied, in registration order.
func (s *Store) Subscribe(fn func(Mutation)) {
	s.hooks = append(s.hooks, fn)
}

func (s *Store) emit(m Mutation) {
	for _, fn := range s.hooks {
		fn(m)
	}
}

// SetRoster replaces the member roster used to validate assignees. The
// roster itself is owned by the group service; the store only reads it.
func (s *Store) SetRoster(members []model.Member) {
	s.roster = make([]model.Member, len(members))
	copy(s.roster, members)
	s.rosterIDs = make(map[string]bool, len(members))
	for _, m := range members {
		s.rosterIDs[m.ID] = true
	}
}

func (s *Store) Roster() []model.Member {
	out := make([]model.Member, len(s.roster))
	copy(out, s.roster)
	return out
}

// Seed loads a persisted snapshot. Existing contents are replaced, the
// order counter resumes past the highest loaded order, and no mutation
// events are emitted (the snapshot is already persisted).
func (s *Store) Seed(tasks []model.Task, tags []model.Tag, focus []string) {
	s.tasks = nil
	s.byID = make(map[string]*model.Task)
	s.tags = make(map[string]model.Tag)
	s.tagOrder = nil
	s.focus = nil
	s.nextOrder = 0
	for _, tag := range tags {
		if tag.ID == model.NoneTagID {
			continue
		}
		s.tags[tag.ID] = tag
		s.tagOrder = append(s.tagOrder, tag.ID)
	}
	for _, in := range tasks {
		task := in.Clone()
		if _, ok := s.tags[task.TagID]; !ok {
			task.TagID = model.NoneTagID
		}
		task.Date = model.Day(task.Date)
		if task.Order >= s.nextOrder {
			s.nextOrder = task.Order + 1
		}
		stored := task
		s.tasks = append(s.tasks, &stored)
		s.byID[stored.ID] = &stored
	}
	for _, id := range focus {
		if _, ok := s.byID[id]; ok {
			s.focus = append(s.focus, id)
		}
	}
}

// CreateInput carries caller overrides for Create. Zero values fall back to
// defaults: the sentinel tag, today's date, incomplete, no subtasks.
type CreateInput struct {
	Name       string
	TagID      string
	Date       time.Time
	Subtasks   []model.Subtask
	AssigneeID string
	Focus      bool
}

func (s *Store) Create(in CreateInput) (model.Task, error) {
	tagID := in.TagID
	if tagID == "" {
		tagID = model.NoneTagID
	}
	if _, err := s.resolveTag(tagID); err != nil {
		return model.Task{}, err
	}
	if in.AssigneeID != "" && !s.rosterIDs[in.AssigneeID] {
		return model.Task{}, fmt.Errorf("%w: assignee %q not in roster", ErrValidation, in.AssigneeID)
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	task := model.Task{
		ID:         s.newID(),
		Name:       in.Name,
		TagID:      tagID,
		Date:       model.Day(date),
		Order:      s.nextOrder,
		AssigneeID: in.AssigneeID,
		CreatedAt:  s.now(),
	}
	s.nextOrder++
	for _, sub := range in.Subtasks {
		if sub.ID == "" {
			sub.ID = s.newID()
		}
		task.Subtasks = append(task.Subtasks, sub)
	}
	stored := task
	s.tasks = append(s.tasks, &stored)
	s.byID[stored.ID] = &stored
	if in.Focus {
		s.focus = append(s.focus, stored.ID)
	}
	s.emit(Mutation{Kind: MutationCreate, Task: stored.Clone(), ID: stored.ID})
	return stored.Clone(), nil
}

// Patch is a partial-field update. Nil fields are left untouched.
type Patch struct {
	Name       *string
	TagID      *string
	Date       *time.Time
	Complete   *bool
	Subtasks   *[]model.Subtask
	AssigneeID *string
}

// Update merges patch into the task. Validation happens against the fully
// merged result before anything is written, so a rejected patch leaves the
// task exactly as it was.
func (s *Store) Update(id string, patch Patch) (model.Task, error) {
	existing, ok := s.byID[id]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	merged := existing.Clone()
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return model.Task{}, fmt.Errorf("%w: task name must not be empty", ErrValidation)
		}
		merged.Name = *patch.Name
	}
	if patch.TagID != nil {
		if _, err := s.resolveTag(*patch.TagID); err != nil {
			return model.Task{}, err
		}
		merged.TagID = *patch.TagID
	}
	if patch.Date != nil {
		merged.Date = model.Day(*patch.Date)
	}
	if patch.Complete != nil {
		merged.Complete = *patch.Complete
	}
	if patch.Subtasks != nil {
		subs := make([]model.Subtask, len(*patch.Subtasks))
		copy(subs, *patch.Subtasks)
		for i := range subs {
			if subs[i].ID == "" {
				subs[i].ID = s.newID()
			}
		}
		merged.Subtasks = subs
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID != "" && !s.rosterIDs[*patch.AssigneeID] {
			return model.Task{}, fmt.Errorf("%w: assignee %q not in roster", ErrValidation, *patch.AssigneeID)
		}
		merged.AssigneeID = *patch.AssigneeID
	}
	*existing = merged
	s.emit(Mutation{Kind: MutationUpdate, Task: merged.Clone(), ID: id})
	return merged.Clone(), nil
}

// Delete removes the task and cascades: any focus queue entry referencing it
// goes with it, in the same logical operation.
func (s *Store) Delete(id string) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.dropFocus(id)
	s.emit(Mutation{Kind: MutationDelete, ID: id})
	return nil
}

func (s *Store) Get(id string) (model.Task, error) {
	task, ok := s.byID[id]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: task %q", ErrNotFound, id)
	}
	return task.Clone(), nil
}

// List returns all tasks in store insertion order.
func (s *Store) List() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}
