package model

import "time"

// Submissions are a scored, teacher-graded concept that runs parallel to the
// completion ledger. The two are deliberately not unified: completion is a
// set-membership fact, a submission carries status/score/feedback.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionCompleted SubmissionStatus = "completed"
	SubmissionFailed    SubmissionStatus = "failed"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionPending, SubmissionCompleted, SubmissionFailed:
		return true
	}
	return false
}

type Submission struct {
	ID           string           `json:"id"`
	StudentID    string           `json:"student_id"`
	AssignmentID string           `json:"assignment_id"`
	Status       SubmissionStatus `json:"status"`
	Score        *int             `json:"score,omitempty"` // 0..100
	Feedback     *string          `json:"feedback,omitempty"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
