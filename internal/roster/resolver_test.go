package roster

import (
	"errors"
	"strings"
	"testing"

	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

var testRoster = []model.Member{
	{ID: "dl123", Name: "Darien Lopez"},
	{ID: "sj234", Name: "Sarah Johnson"},
	{ID: "jd345", Name: "John Doe"},
	{ID: "jr456", Name: "Jane Roe"},
}

func TestSearchEmptyQueryReturnsRosterOrder(t *testing.T) {
	r := New(engine.NewStore())
	got := r.Search("  ", testRoster)
	if len(got) != len(testRoster) {
		t.Fatalf("expected full roster, got %d members", len(got))
	}
	for i := range testRoster {
		if got[i].ID != testRoster[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, testRoster[i].ID, got[i].ID)
		}
	}
}

func TestSearchRanksBestMatchFirst(t *testing.T) {
	r := New(engine.NewStore())
	got := r.Search("jo", testRoster)
	if len(got) == 0 {
		t.Fatal("expected at least one match for jo")
	}
	johnPos := -1
	darienPos := -1
	for i, m := range got {
		switch m.ID {
		case "jd345":
			johnPos = i
		case "dl123":
			darienPos = i
		}
	}
	if johnPos < 0 {
		t.Fatalf("John Doe missing from results: %+v", got)
	}
	if darienPos >= 0 && darienPos < johnPos {
		t.Fatalf("non-matching name ranked above John Doe: %+v", got)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	r := New(engine.NewStore())
	got := r.Search("SARAH", testRoster)
	if len(got) == 0 || got[0].ID != "sj234" {
		t.Fatalf("expected Sarah Johnson first, got %+v", got)
	}
}

type reverseMatcher struct{}

func (reverseMatcher) Rank(query string, names []string) []int {
	out := make([]int, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(names[i]), strings.ToLower(query)) {
			out = append(out, i)
		}
	}
	return out
}

func TestMatcherIsSwappable(t *testing.T) {
	r := NewWithMatcher(engine.NewStore(), reverseMatcher{})
	got := r.Search("j", testRoster)
	if len(got) != 2 {
		t.Fatalf("expected 2 substring matches, got %d", len(got))
	}
	if got[0].ID != "jr456" {
		t.Fatalf("custom matcher not used, got %+v", got)
	}
}

func TestAssignWritesThroughStore(t *testing.T) {
	store := engine.NewStore()
	store.SetRoster(testRoster)
	r := New(store)
	task, err := store.Create(engine.CreateInput{Name: "Essay"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := r.Assign(task.ID, "jd345")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if updated.AssigneeID != "jd345" {
		t.Fatalf("expected assignee jd345, got %q", updated.AssigneeID)
	}

	if _, err := r.Assign(task.ID, "ghost"); !errors.Is(err, engine.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown member, got: %v", err)
	}
	if _, err := r.Assign("missing-task", "jd345"); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	cleared, err := r.Assign(task.ID, "")
	if err != nil {
		t.Fatalf("clear assign: %v", err)
	}
	if cleared.AssigneeID != "" {
		t.Fatalf("expected cleared assignee, got %q", cleared.AssigneeID)
	}
}

func TestAssigneeResolvesForDisplay(t *testing.T) {
	r := New(engine.NewStore())
	task := model.Task{ID: "t1", AssigneeID: "sj234"}
	member, ok := r.Assignee(task, testRoster)
	if !ok || member.Name != "Sarah Johnson" {
		t.Fatalf("expected Sarah Johnson, got %+v ok=%v", member, ok)
	}
	if _, ok := r.Assignee(model.Task{ID: "t2"}, testRoster); ok {
		t.Fatal("unassigned task must not resolve a member")
	}
}
