package model

import (
	"errors"
	"strings"
)

// Member is one entry in a group roster. Rosters are supplied by the group
// service and treated as read-only here.
type Member struct {
	ID   string
	Name string
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("model: member id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("model: member name is required")
	}
	return nil
}
