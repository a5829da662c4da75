package http

import (
	"net/http"
	"time"

	"docscript/internal/delivery/http/handler"
	"docscript/internal/delivery/http/middleware"
	"docscript/internal/domain/entity"
	"docscript/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	patientHandler    *handler.PatientHandler
	clinicHandler     *handler.ClinicHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	now               func() time.Time
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	clinicHandler *handler.ClinicHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		userHandler:       userHandler,
		patientHandler:    patientHandler,
		clinicHandler:     clinicHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		now:               time.Now,
	}
}

// protect authenticates the request and, when roles are given, restricts it to them.
func (r *Router) protect(h http.HandlerFunc, roles ...entity.Role) http.Handler {
	var next http.Handler = h
	if len(roles) > 0 {
		next = middleware.RequireRole(roles...)(next)
	}
	return r.authMiddleware.Authenticate(next)
}

func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	admin := entity.RoleAdmin
	staff := []entity.Role{entity.RoleAdmin, entity.RoleUser}

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", r.protect(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)
	api.Handle("/auth/logout", r.protect(r.authHandler.Logout)).Methods(http.MethodPost)

	// User management (admin)
	api.Handle("/users", r.protect(r.userHandler.ListUsers, admin)).Methods(http.MethodGet)
	api.Handle("/users/create-admin", r.protect(r.userHandler.CreateAdmin, admin)).Methods(http.MethodPost)
	api.Handle("/users/{id}", r.protect(r.userHandler.DeleteUser, admin)).Methods(http.MethodDelete)
	api.Handle("/users/{id}/make-admin", r.protect(r.userHandler.MakeAdmin, admin)).Methods(http.MethodPatch)
	api.Handle("/users/{id}/approve", r.protect(r.userHandler.ApproveUser, admin)).Methods(http.MethodPatch)

	// Patients; fixed paths are registered before /patients/{id}
	api.Handle("/patients", r.protect(r.patientHandler.ListPatients, admin)).Methods(http.MethodGet)
	api.Handle("/patients", r.protect(r.patientHandler.CreatePatient, staff...)).Methods(http.MethodPost)
	api.Handle("/patients/export", r.protect(r.patientHandler.ExportPatients, admin)).Methods(http.MethodGet)
	api.Handle("/patients/search/{query}", r.protect(r.patientHandler.SearchPatients, admin)).Methods(http.MethodGet)
	api.Handle("/patients/{id}", r.protect(r.patientHandler.GetPatient, admin)).Methods(http.MethodGet)
	api.Handle("/patients/{id}", r.protect(r.patientHandler.UpdatePatient, admin)).Methods(http.MethodPut)
	api.Handle("/patients/{id}", r.protect(r.patientHandler.DeletePatient, admin)).Methods(http.MethodDelete)

	// Clinic config (admin)
	api.Handle("/config", r.protect(r.clinicHandler.GetConfig, admin)).Methods(http.MethodGet)
	api.Handle("/config", r.protect(r.clinicHandler.UpdateConfig, admin)).Methods(http.MethodPut)

	// Stats (admin)
	api.Handle("/stats", r.protect(r.patientHandler.GetStats, admin)).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	// mux skips router middleware for unmatched routes, so CORS and access
	// logging wrap the whole router instead.
	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Server is running",
		Timestamp: r.now().UTC().Format(time.RFC3339Nano),
	})
}

func routeNotFound(w http.ResponseWriter, req *http.Request) {
	response.NotFound(w, "Route not found")
}
