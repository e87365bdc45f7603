package handler

import (
	"encoding/json"
	"net/http"

	"nextrack/internal/api/middleware"
	"nextrack/internal/app/service"
	"nextrack/internal/common"

	"github.com/go-chi/chi/v5"
)

// StudentHandler serves the student-facing dashboard surface: profile,
// assignments, completion toggles, attendance and rankings.
type StudentHandler struct {
	profileService    *service.ProfileService
	assignmentService *service.AssignmentService
	completionService *service.CompletionService
	attendanceService *service.AttendanceService
	rankingService    *service.RankingService
}

func NewStudentHandler(
	profileService *service.ProfileService,
	assignmentService *service.AssignmentService,
	completionService *service.CompletionService,
	attendanceService *service.AttendanceService,
	rankingService *service.RankingService,
) *StudentHandler {
	return &StudentHandler{
		profileService:    profileService,
		assignmentService: assignmentService,
		completionService: completionService,
		attendanceService: attendanceService,
		rankingService:    rankingService,
	}
}

func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.StudentOnly)

	r.Get("/profile", h.getProfile)
	r.Put("/profile", h.updateProfile)

	r.Get("/assignments", h.listAssignments)
	r.Get("/completed-assignments", h.listCompleted)
	r.Post("/assignments/{assignmentID}/complete", h.complete)
	r.Post("/assignments/{assignmentID}/uncomplete", h.uncomplete)

	r.Get("/attendance", h.getAttendance)
	r.Get("/rankings", h.getRankings)
}

func (h *StudentHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	student, err := h.profileService.Get(r.Context(), studentID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, student)
}

func (h *StudentHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	student, err := h.profileService.Update(r.Context(), studentID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, student)
}

func (h *StudentHandler) listAssignments(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	assignments, err := h.assignmentService.ListForStudent(r.Context(), studentID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, assignments)
}

func (h *StudentHandler) listCompleted(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	completed, err := h.completionService.CompletedForStudent(r.Context(), studentID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, completed)
}

func (h *StudentHandler) complete(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	assignmentID := chi.URLParam(r, "assignmentID")

	if err := h.completionService.Complete(r.Context(), studentID, assignmentID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Assignment marked as completed")
}

func (h *StudentHandler) uncomplete(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	assignmentID := chi.URLParam(r, "assignmentID")

	if err := h.completionService.Uncomplete(r.Context(), studentID, assignmentID); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Assignment marked as not completed")
}

func (h *StudentHandler) getAttendance(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	window, err := h.attendanceService.StudentWindow(r.Context(), studentID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, window)
}

func (h *StudentHandler) getRankings(w http.ResponseWriter, r *http.Request) {
	studentID, _ := middleware.GetUserIDFromContext(r.Context())
	snapshot, err := h.rankingService.Snapshot(r.Context(), studentID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, snapshot)
}
