package engine

import (
	"fmt"

	"github.com/sandeepkv93/focusd/internal/model"
)

// Tag resolves a tag id. The sentinel "untagged" tag always resolves, so a
// task's TagID can never dangle.
func (s *Store) Tag(id string) (model.Tag, error) {
	return s.resolveTag(id)
}

func (s *Store) resolveTag(id string) (model.Tag, error) {
	if id == model.NoneTagID {
		return model.NoneTag(), nil
	}
	tag, ok := s.tags[id]
	if !ok {
		return model.Tag{}, fmt.Errorf("%w: tag %q unresolvable", ErrValidation, id)
	}
	return tag, nil
}

// Tags returns all registered tags in registration order, the sentinel
// first.
func (s *Store) Tags() []model.Tag {
	out := make([]model.Tag, 0, len(s.tagOrder)+1)
	out = append(out, model.NoneTag())
	for _, id := range s.tagOrder {
		out = append(out, s.tags[id])
	}
	return out
}

// UpsertTag registers a tag or replaces an existing one. The sentinel tag is
// reserved and cannot be redefined.
func (s *Store) UpsertTag(tag model.Tag) error {
	if tag.ID == model.NoneTagID {
		return fmt.Errorf("%w: tag id %q is reserved", ErrValidation, model.NoneTagID)
	}
	if err := tag.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, exists := s.tags[tag.ID]; !exists {
		s.tagOrder = append(s.tagOrder, tag.ID)
	}
	s.tags[tag.ID] = tag
	s.emit(Mutation{Kind: MutationTagUpsert, Tag: tag, ID: tag.ID})
	return nil
}

// RemoveTag deletes a tag and, in the same operation, reassigns every task
// referencing it to the sentinel tag.
func (s *Store) RemoveTag(id string) error {
	if id == model.NoneTagID {
		return fmt.Errorf("%w: the sentinel tag cannot be removed", ErrValidation)
	}
	if _, ok := s.tags[id]; !ok {
		return fmt.Errorf("%w: tag %q", ErrNotFound, id)
	}
	delete(s.tags, id)
	for i, tagID := range s.tagOrder {
		if tagID == id {
			s.tagOrder = append(s.tagOrder[:i], s.tagOrder[i+1:]...)
			break
		}
	}
	for _, task := range s.tasks {
		if task.TagID == id {
			task.TagID = model.NoneTagID
			s.emit(Mutation{Kind: MutationUpdate, Task: task.Clone(), ID: task.ID})
		}
	}
	s.emit(Mutation{Kind: MutationTagRemove, ID: id})
	return nil
}
