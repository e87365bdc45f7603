package handler

import (
	"encoding/json"
	"net/http"

	"nextrack/internal/api/middleware"
	"nextrack/internal/app/service"
	"nextrack/internal/common"

	"github.com/go-chi/chi/v5"
)

// TeacherHandler serves the teacher surface: assignment management,
// completion status, attendance, reports, test results and submissions.
type TeacherHandler struct {
	assignmentService *service.AssignmentService
	completionService *service.CompletionService
	attendanceService *service.AttendanceService
	reportService     *service.ReportService
	testResultService *service.TestResultService
	submissionService *service.SubmissionService
}

func NewTeacherHandler(
	assignmentService *service.AssignmentService,
	completionService *service.CompletionService,
	attendanceService *service.AttendanceService,
	reportService *service.ReportService,
	testResultService *service.TestResultService,
	submissionService *service.SubmissionService,
) *TeacherHandler {
	return &TeacherHandler{
		assignmentService: assignmentService,
		completionService: completionService,
		attendanceService: attendanceService,
		reportService:     reportService,
		testResultService: testResultService,
		submissionService: submissionService,
	}
}

func (h *TeacherHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.TeacherOnly)

	r.Post("/assignments", h.createAssignment)
	r.Get("/assignments", h.listAssignments)
	r.Get("/assignments/{assignmentID}", h.getAssignment)
	r.Get("/assignments/{assignmentID}/status", h.assignmentStatus)

	r.Get("/students", h.listStudents)
	r.Get("/student-performance", h.studentPerformance)

	r.Get("/attendance", h.getAttendance)
	r.Post("/attendance", h.markAttendance)
	r.Post("/attendance/mark-all-absent", h.markAllAbsent)

	r.Post("/test-results", h.uploadTestResults)
	r.Get("/tests", h.listTests)
	r.Get("/tests/{testName}", h.testResults)

	r.Put("/submissions", h.upsertSubmission)
	r.Get("/submissions", h.listSubmissions)
}

func (h *TeacherHandler) createAssignment(w http.ResponseWriter, r *http.Request) {
	teacherID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), teacherID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, assignment)
}

func (h *TeacherHandler) listAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.List(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, assignments)
}

func (h *TeacherHandler) getAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.assignmentService.Get(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, assignment)
}

func (h *TeacherHandler) assignmentStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.completionService.Status(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, status)
}

func (h *TeacherHandler) listStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.reportService.Students(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, students)
}

func (h *TeacherHandler) studentPerformance(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Performance(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, report)
}

func (h *TeacherHandler) getAttendance(w http.ResponseWriter, r *http.Request) {
	windows, err := h.attendanceService.AllWindows(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, windows)
}

func (h *TeacherHandler) markAttendance(w http.ResponseWriter, r *http.Request) {
	teacherID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.attendanceService.Mark(r.Context(), teacherID, req); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Attendance recorded")
}

func (h *TeacherHandler) markAllAbsent(w http.ResponseWriter, r *http.Request) {
	teacherID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.attendanceService.MarkAllAbsent(r.Context(), teacherID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "All unrecorded days marked absent")
}

func (h *TeacherHandler) uploadTestResults(w http.ResponseWriter, r *http.Request) {
	var req service.UploadTestResultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	count, err := h.testResultService.Upload(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, map[string]int{"count": count})
}

func (h *TeacherHandler) listTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.testResultService.ListTests(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, tests)
}

func (h *TeacherHandler) testResults(w http.ResponseWriter, r *http.Request) {
	detail, err := h.testResultService.Results(r.Context(), chi.URLParam(r, "testName"))
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, detail)
}

func (h *TeacherHandler) upsertSubmission(w http.ResponseWriter, r *http.Request) {
	var req service.UpsertSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	submission, err := h.submissionService.Upsert(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, submission)
}

func (h *TeacherHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	assignmentID := r.URL.Query().Get("assignment_id")
	if assignmentID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "assignment_id query parameter is required")
		return
	}

	submissions, err := h.submissionService.ListByAssignment(r.Context(), assignmentID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, submissions)
}
