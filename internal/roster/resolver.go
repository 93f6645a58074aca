// Package roster resolves task assignees against a group's member list.
// The roster itself comes from the group service and is read-only here.
package roster

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

// Matcher ranks candidate names against a query. It exists so the matching
// algorithm can be swapped without touching callers; the default is
// fuzzy subsequence matching.
type Matcher interface {
	Rank(query string, names []string) []int
}

// FuzzyMatcher ranks via github.com/sahilm/fuzzy. Matching is
// case-insensitive; ties keep candidate order.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Rank(query string, names []string) []int {
	matches := fuzzy.Find(query, names)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}

type Resolver struct {
	store   *engine.Store
	matcher Matcher
}

func New(store *engine.Store) *Resolver {
	return &Resolver{store: store, matcher: FuzzyMatcher{}}
}

func NewWithMatcher(store *engine.Store, matcher Matcher) *Resolver {
	return &Resolver{store: store, matcher: matcher}
}

// Search ranks roster members against query. An empty query returns the
// whole roster in roster order, unranked.
func (r *Resolver) Search(query string, members []model.Member) []model.Member {
	if strings.TrimSpace(query) == "" {
		out := make([]model.Member, len(members))
		copy(out, members)
		return out
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	ranked := r.matcher.Rank(query, names)
	out := make([]model.Member, 0, len(ranked))
	for _, idx := range ranked {
		out = append(out, members[idx])
	}
	return out
}

// Assign writes memberID into the task's assignee field through the store's
// mutation contract. An empty memberID clears the assignment.
func (r *Resolver) Assign(taskID, memberID string) (model.Task, error) {
	return r.store.Update(taskID, engine.Patch{AssigneeID: &memberID})
}

// Assignee resolves a task's existing assignment for display. Display never
// runs a search; it looks the member up directly.
func (r *Resolver) Assignee(task model.Task, members []model.Member) (model.Member, bool) {
	if task.AssigneeID == "" {
		return model.Member{}, false
	}
	for _, m := range members {
		if m.ID == task.AssigneeID {
			return m, true
		}
	}
	return model.Member{}, false
}
