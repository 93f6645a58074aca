package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/engine"
	"github.com/sandeepkv93/focusd/internal/model"
)

// Drives a real engine store with the writer subscribed, then reloads the
// snapshot and checks the persisted state matches the in-memory state.
func TestWriterMirrorsEngineMutations(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	writer := NewWriter(repo)

	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	store := engine.NewStoreAt(func() time.Time { return now }, nil)
	var applyErr error
	store.Subscribe(func(m engine.Mutation) {
		if err := writer.Apply(ctx, m); err != nil && applyErr == nil {
			applyErr = err
		}
	})

	if err := store.UpsertTag(model.Tag{ID: "tag-courses", Name: "Courses", Color: "purple", CreatedAt: now}); err != nil {
		t.Fatalf("upsert tag: %v", err)
	}
	task, err := store.Create(engine.CreateInput{
		Name:     "Essay",
		TagID:    "tag-courses",
		Subtasks: []model.Subtask{{Name: "outline"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	doomed, err := store.Create(engine.CreateInput{Name: "Scratch"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	complete := true
	if _, err := store.Update(task.ID, engine.Patch{Complete: &complete}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.Delete(doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Pull(task.ID); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if err := writer.SaveFocus(ctx, store.FocusIDs()); err != nil {
		t.Fatalf("save focus: %v", err)
	}
	if applyErr != nil {
		t.Fatalf("apply mutation: %v", applyErr)
	}

	snap, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	tasks, tags, focus := snap.ModelTasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 persisted task, got %d", len(tasks))
	}
	if tasks[0].ID != task.ID || !tasks[0].Complete || len(tasks[0].Subtasks) != 1 {
		t.Fatalf("unexpected persisted task: %#v", tasks[0])
	}
	if len(tags) != 1 || tags[0].ID != "tag-courses" {
		t.Fatalf("unexpected persisted tags: %#v", tags)
	}
	if len(focus) != 1 || focus[0] != task.ID {
		t.Fatalf("unexpected persisted focus: %#v", focus)
	}
}

func TestWriterTagRemoval(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	writer := NewWriter(repo)

	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	tag := model.Tag{ID: "tag-a", Name: "A", Color: "red", CreatedAt: now}
	if err := writer.Apply(ctx, engine.Mutation{Kind: engine.MutationTagUpsert, Tag: tag, ID: tag.ID}); err != nil {
		t.Fatalf("apply upsert: %v", err)
	}
	// upsert of an existing tag goes through the update path
	tag.Color = "blue"
	if err := writer.Apply(ctx, engine.Mutation{Kind: engine.MutationTagUpsert, Tag: tag, ID: tag.ID}); err != nil {
		t.Fatalf("apply second upsert: %v", err)
	}
	got, err := repo.GetTag(ctx, "tag-a")
	if err != nil {
		t.Fatalf("get tag: %v", err)
	}
	if got.Color != "blue" {
		t.Fatalf("expected updated color, got %q", got.Color)
	}

	if err := writer.Apply(ctx, engine.Mutation{Kind: engine.MutationTagRemove, ID: "tag-a"}); err != nil {
		t.Fatalf("apply removal: %v", err)
	}
	if _, err := repo.GetTag(ctx, "tag-a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
