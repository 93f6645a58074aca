package model

import (
	"errors"
	"strings"
	"time"
)

// NoneTagID identifies the reserved "untagged" tag. It always resolves, and
// tasks fall back to it when their own tag is removed.
const NoneTagID = "none"

type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

func NoneTag() Tag {
	return Tag{ID: NoneTagID, Name: "None", Color: "gray"}
}

// DefaultTags seeds a fresh installation with a small starter palette.
func DefaultTags(now time.Time) []Tag {
	return []Tag{
		{ID: "tag-personal", Name: "Personal", Color: "blue", CreatedAt: now},
		{ID: "tag-project-team", Name: "Project Team", Color: "green", CreatedAt: now},
		{ID: "tag-courses", Name: "Courses", Color: "purple", CreatedAt: now},
	}
}

func (t Tag) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: tag id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: tag name is required")
	}
	if strings.TrimSpace(t.Color) == "" {
		return errors.New("model: tag color is required")
	}
	return nil
}
