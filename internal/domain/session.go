package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidDuration = errors.New("session duration must be positive")

// SessionRecord describes one meditation session. It is passed by value and
// never mutated after construction.
type SessionRecord struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	Kind            Kind   `json:"kind"`
	Description     string `json:"description"`
}

func NewSessionRecord(title string, durationMinutes int, kind Kind, description string) (SessionRecord, error) {
	if durationMinutes <= 0 {
		return SessionRecord{}, fmt.Errorf("%q: %w (got %d)", title, ErrInvalidDuration, durationMinutes)
	}

	return SessionRecord{
		Title:           title,
		DurationMinutes: durationMinutes,
		Kind:            kind,
		Description:     description,
	}, nil
}

// TotalSeconds is the countdown length of a run of this session.
func (s SessionRecord) TotalSeconds() int {
	return s.DurationMinutes * 60
}
