package model

import "time"

type AssignmentDifficulty string

const (
	DifficultyEasy   AssignmentDifficulty = "easy"
	DifficultyMedium AssignmentDifficulty = "medium"
	DifficultyHard   AssignmentDifficulty = "hard"
)

func (d AssignmentDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Assignment struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	Deadline    time.Time            `json:"deadline"`
	Difficulty  AssignmentDifficulty `json:"difficulty"`
	Links       []string             `json:"links"`
	CreatedByID string               `json:"created_by_id"`
	CreatedAt   time.Time            `json:"created_at"`

	CreatedByName *string `json:"created_by_name,omitempty"` // For display
}
