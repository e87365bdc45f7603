package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"
	"nextrack/internal/domain/repository"

	"github.com/google/uuid"
)

// AttendanceService owns the per-student, per-day presence ledger and its
// trailing-window statistics.
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	studentRepo    repository.StudentRepository
	windowDays     int
	today          func() time.Time
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	studentRepo repository.StudentRepository,
	windowDays int,
	today func() time.Time,
) *AttendanceService {
	if today == nil {
		today = time.Now
	}
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		windowDays:     windowDays,
		today:          today,
	}
}

type MarkAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required"` // YYYY-MM-DD
	Present   *bool  `json:"present" validate:"required"`
}

// Mark upserts one (student, day) presence fact. Future days are rejected
// before any write.
func (s *AttendanceService) Mark(ctx context.Context, teacherID string, req MarkAttendanceRequest) error {
	if err := common.ValidateStruct(req); err != nil {
		return err
	}
	day, err := time.Parse(model.DayFormat, req.Date)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", common.ErrValidation)
	}
	day = model.NormalizeDay(day)
	if day.After(model.NormalizeDay(s.today())) {
		return fmt.Errorf("cannot mark attendance for a future date: %w", common.ErrValidation)
	}
	if _, err := s.studentRepo.FindByID(ctx, req.StudentID); err != nil {
		return fmt.Errorf("student not found: %w", err)
	}

	return s.attendanceRepo.Upsert(ctx, &model.AttendanceRecord{
		ID:         uuid.NewString(),
		StudentID:  req.StudentID,
		Date:       day,
		Present:    *req.Present,
		MarkedByID: teacherID,
	})
}

// StudentWindow returns the trailing-window day map and percentage for one
// student. Days without a record count as absent.
func (s *AttendanceService) StudentWindow(ctx context.Context, studentID string) (*model.AttendanceWindow, error) {
	if _, err := s.studentRepo.FindByID(ctx, studentID); err != nil {
		return nil, err
	}
	from, to := s.windowBounds()
	records, err := s.attendanceRepo.WindowForStudent(ctx, studentID, from, to)
	if err != nil {
		return nil, err
	}

	window := &model.AttendanceWindow{Attendance: map[string]bool{}}
	present := 0
	for _, rec := range records {
		window.Attendance[model.NormalizeDay(rec.Date).Format(model.DayFormat)] = rec.Present
		if rec.Present {
			present++
		}
	}
	window.Percentage = Percentage(present, s.windowDays)
	return window, nil
}

// AllWindows returns the same window shape for every student, keyed by
// student id.
func (s *AttendanceService) AllWindows(ctx context.Context) (map[string]map[string]bool, error) {
	from, to := s.windowBounds()
	records, err := s.attendanceRepo.Window(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byStudent := map[string]map[string]bool{}
	for _, rec := range records {
		dayKey := model.NormalizeDay(rec.Date).Format(model.DayFormat)
		if byStudent[rec.StudentID] == nil {
			byStudent[rec.StudentID] = map[string]bool{}
		}
		byStudent[rec.StudentID][dayKey] = rec.Present
	}
	return byStudent, nil
}

// MarkAllAbsent backfills present=false for every (student, window day)
// lacking a record. Existing rows are untouched, so the sweep is safe to
// re-run.
func (s *AttendanceService) MarkAllAbsent(ctx context.Context, teacherID string) error {
	studentIDs, err := s.studentRepo.ListIDs(ctx)
	if err != nil {
		return err
	}
	today := model.NormalizeDay(s.today())
	for _, studentID := range studentIDs {
		for i := 0; i < s.windowDays; i++ {
			day := today.AddDate(0, 0, -i)
			if err := s.attendanceRepo.InsertAbsentIfMissing(ctx, studentID, day, teacherID); err != nil {
				return fmt.Errorf("backfill for student %s on %s: %w", studentID, day.Format(model.DayFormat), err)
			}
		}
	}
	return nil
}

func (s *AttendanceService) windowBounds() (from, to time.Time) {
	to = model.NormalizeDay(s.today())
	from = to.AddDate(0, 0, -(s.windowDays - 1))
	return from, to
}

// Percentage is round(100 * present / windowDays).
func Percentage(present, windowDays int) int {
	if windowDays <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(windowDays) * 100))
}
