package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyWordAssignment pins one word to a (date, difficulty level) slot.
// At most one assignment exists per slot. RelaxedConstraint marks picks
// made after the lookback exclusion had to be ignored because no eligible
// alternative remained.
type DailyWordAssignment struct {
	ID                uuid.UUID
	Date              time.Time // date-only, UTC midnight
	DifficultyLevel   DifficultyLevel
	WordID            uuid.UUID
	RelaxedConstraint bool
	CreatedAt         time.Time
}

// AssignedWord joins an assignment with its word for read endpoints.
type AssignedWord struct {
	DailyWordAssignment
	WordText     string
	PartOfSpeech PartOfSpeech
}

// DateOnly truncates t to UTC midnight, the canonical assignment date form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
