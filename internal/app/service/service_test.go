package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"nextrack/internal/common"
	"nextrack/internal/domain/model"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[string]*model.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*model.Student{}}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.students {
		if existing.Email == s.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	cp := *s
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.students[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) FindByEmail(_ context.Context, email string) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeStudentRepo) FindByID(_ context.Context, id string) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) List(_ context.Context) ([]model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Student{}
	for _, s := range r.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStudentRepo) ListIDs(ctx context.Context) ([]string, error) {
	students, _ := r.List(ctx)
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (r *fakeStudentRepo) UpdateProfile(_ context.Context, s *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.students[s.ID]
	if !ok {
		return common.ErrNotFound
	}
	existing.Name = s.Name
	existing.Phone = s.Phone
	existing.LeetcodeUsername = s.LeetcodeUsername
	existing.CodechefUsername = s.CodechefUsername
	existing.GithubUsername = s.GithubUsername
	existing.LinkedinURL = s.LinkedinURL
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeStudentRepo) UpdateRankings(_ context.Context, id string, rankings json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return common.ErrNotFound
	}
	s.Rankings = rankings
	return nil
}

type fakeTeacherRepo struct {
	mu       sync.Mutex
	teachers map[string]*model.Teacher
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: map[string]*model.Teacher{}}
}

func (r *fakeTeacherRepo) Create(_ context.Context, t *model.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teachers {
		if existing.Email == t.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	cp := *t
	r.teachers[t.ID] = &cp
	return nil
}

func (r *fakeTeacherRepo) FindByEmail(_ context.Context, email string) (*model.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teachers {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeTeacherRepo) FindByID(_ context.Context, id string) (*model.Teacher, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teachers[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]*model.Assignment
	roster      map[string]map[string]bool // assignment -> student set
	students    *fakeStudentRepo
}

func newFakeAssignmentRepo(students *fakeStudentRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		assignments: map[string]*model.Assignment{},
		roster:      map[string]map[string]bool{},
		students:    students,
	}
}

func (r *fakeAssignmentRepo) CreateWithRoster(_ context.Context, a *model.Assignment, studentIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.assignments {
		if existing.Slug == a.Slug {
			return fmt.Errorf("assignment with this slug already exists: %w", common.ErrConflict)
		}
	}
	cp := *a
	cp.CreatedAt = time.Now()
	r.assignments[a.ID] = &cp
	r.roster[a.ID] = map[string]bool{}
	for _, sid := range studentIDs {
		r.roster[a.ID][sid] = true
	}
	return nil
}

func (r *fakeAssignmentRepo) FindByID(_ context.Context, id string) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) List(_ context.Context) ([]model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Assignment{}
	for _, a := range r.assignments {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.After(out[j].Deadline) })
	return out, nil
}

func (r *fakeAssignmentRepo) ListForStudent(_ context.Context, studentID string) ([]model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Assignment{}
	for id, set := range r.roster {
		if set[studentID] {
			out = append(out, *r.assignments[id])
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Roster(ctx context.Context, assignmentID string) ([]model.StudentSummary, error) {
	r.mu.Lock()
	set := r.roster[assignmentID]
	ids := make([]string, 0, len(set))
	for sid := range set {
		ids = append(ids, sid)
	}
	r.mu.Unlock()

	out := []model.StudentSummary{}
	for _, sid := range ids {
		s, err := r.students.FindByID(ctx, sid)
		if err != nil {
			continue
		}
		out = append(out, s.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeAssignmentRepo) IsAssigned(_ context.Context, assignmentID, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roster[assignmentID][studentID], nil
}

type completionKey struct{ assignmentID, studentID string }

type fakeCompletionRepo struct {
	mu          sync.Mutex
	facts       map[completionKey]time.Time
	assignments *fakeAssignmentRepo
}

func newFakeCompletionRepo(assignments *fakeAssignmentRepo) *fakeCompletionRepo {
	return &fakeCompletionRepo{facts: map[completionKey]time.Time{}, assignments: assignments}
}

func (r *fakeCompletionRepo) MarkComplete(_ context.Context, assignmentID, studentID string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := completionKey{assignmentID, studentID}
	if _, exists := r.facts[key]; !exists { // First completed_at wins
		r.facts[key] = completedAt
	}
	return nil
}

func (r *fakeCompletionRepo) MarkIncomplete(_ context.Context, assignmentID, studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.facts, completionKey{assignmentID, studentID})
	return nil
}

func (r *fakeCompletionRepo) ListForStudent(ctx context.Context, studentID string) ([]model.CompletedAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.CompletedAssignment{}
	for key, at := range r.facts {
		if key.studentID != studentID {
			continue
		}
		a := r.assignments.assignments[key.assignmentID]
		if a == nil {
			continue
		}
		out = append(out, model.CompletedAssignment{Assignment: *a, CompletedAt: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (r *fakeCompletionRepo) MapForAssignment(_ context.Context, assignmentID string) (map[string]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]time.Time{}
	for key, at := range r.facts {
		if key.assignmentID == assignmentID {
			out[key.studentID] = at
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) CountsByStudent(_ context.Context) (map[string]model.DifficultyCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]model.DifficultyCounts{}
	for key := range r.facts {
		a := r.assignments.assignments[key.assignmentID]
		if a == nil {
			continue
		}
		c := out[key.studentID]
		c.Add(a.Difficulty)
		out[key.studentID] = c
	}
	return out, nil
}

type attendanceKey struct {
	studentID string
	day       string
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[attendanceKey]*model.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[attendanceKey]*model.AttendanceRecord{}}
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, rec *model.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attendanceKey{rec.StudentID, rec.Date.Format(model.DayFormat)}
	if existing, ok := r.records[key]; ok {
		existing.Present = rec.Present
		existing.UpdatedAt = time.Now()
		return nil
	}
	cp := *rec
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.records[key] = &cp
	return nil
}

func (r *fakeAttendanceRepo) InsertAbsentIfMissing(_ context.Context, studentID string, day time.Time, markedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attendanceKey{studentID, day.Format(model.DayFormat)}
	if _, ok := r.records[key]; ok {
		return nil
	}
	r.records[key] = &model.AttendanceRecord{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		Date:       day,
		Present:    false,
		MarkedByID: markedBy,
	}
	return nil
}

func (r *fakeAttendanceRepo) WindowForStudent(_ context.Context, studentID string, from, to time.Time) ([]model.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.AttendanceRecord{}
	for _, rec := range r.records {
		if rec.StudentID == studentID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Window(_ context.Context, from, to time.Time) ([]model.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.AttendanceRecord{}
	for _, rec := range r.records {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[completionKey]*model.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[completionKey]*model.Submission{}}
}

func (r *fakeSubmissionRepo) Upsert(_ context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := completionKey{s.AssignmentID, s.StudentID}
	cp := *s
	r.submissions[key] = &cp
	return nil
}

func (r *fakeSubmissionRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Submission{}
	for key, s := range r.submissions {
		if key.assignmentID == assignmentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListCompleted(_ context.Context) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Submission{}
	for _, s := range r.submissions {
		if s.Status == model.SubmissionCompleted {
			out = append(out, *s)
		}
	}
	return out, nil
}

// Shared test helpers.

func newTestStudent(t *testing.T, repo *fakeStudentRepo, name, email string) *model.Student {
	t.Helper()
	s := &model.Student{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		HashedPassword:   "x",
		Phone:            "1234567890",
		LeetcodeUsername: "lc-" + name,
		CodechefUsername: "cc-" + name,
		GithubUsername:   "gh-" + name,
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("creating test student: %v", err)
	}
	return s
}

func newTestAssignment(t *testing.T, repo *fakeAssignmentRepo, name string, difficulty model.AssignmentDifficulty, studentIDs ...string) *model.Assignment {
	t.Helper()
	a := &model.Assignment{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        name,
		Description: "desc",
		Deadline:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Difficulty:  difficulty,
		Links:       []string{"https://example.com/problem"},
		CreatedByID: uuid.NewString(),
	}
	if err := repo.CreateWithRoster(context.Background(), a, studentIDs); err != nil {
		t.Fatalf("creating test assignment: %v", err)
	}
	return a
}
