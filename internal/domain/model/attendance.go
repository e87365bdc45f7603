package model

import "time"

// DayFormat is the wire format for attendance map keys.
const DayFormat = "2006-01-02"

type AttendanceRecord struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	Date       time.Time `json:"date"` // Canonical day instant, see NormalizeDay
	Present    bool      `json:"present"`
	MarkedByID string    `json:"marked_by_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NormalizeDay collapses any timestamp to the single canonical instant for
// its calendar day (midnight UTC). Every attendance read and write must go
// through this so the same day can never produce two rows.
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AttendanceWindow is the per-student trailing-window view: day → present,
// plus the derived percentage over the whole window (unrecorded days count
// as absent).
type AttendanceWindow struct {
	Attendance map[string]bool `json:"attendance"`
	Percentage int             `json:"percentage"`
}
