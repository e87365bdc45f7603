package api

import (
	"net/http"
	"time"

	"nextrack/internal/api/handler"
	"nextrack/internal/app/service"
	"nextrack/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	profileService *service.ProfileService,
	assignmentService *service.AssignmentService,
	completionService *service.CompletionService,
	attendanceService *service.AttendanceService,
	rankingService *service.RankingService,
	reportService *service.ReportService,
	testResultService *service.TestResultService,
	submissionService *service.SubmissionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (register/login public, verify authenticated)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Student routes (student role)
		studentHandler := handler.NewStudentHandler(profileService, assignmentService, completionService, attendanceService, rankingService)
		v1.Route("/student", studentHandler.RegisterRoutes)

		// Teacher routes (teacher role)
		teacherHandler := handler.NewTeacherHandler(assignmentService, completionService, attendanceService, reportService, testResultService, submissionService)
		v1.Route("/teacher", teacherHandler.RegisterRoutes)
	})

	return r
}
