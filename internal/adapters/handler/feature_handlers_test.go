package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medora-health/portal-access-service/internal/adapters/handler"
	"github.com/medora-health/portal-access-service/internal/adapters/repository"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

// login runs a real login and returns the bearer token.
func (f *portalFixture) login(t *testing.T, email, password string, role domain.Role) string {
	t.Helper()
	rec := postJSON(t, f.auth.Login, "/api/auth/login", handler.LoginRequest{
		Email: email, Password: password, Role: role,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("fixture login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp handler.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid login response: %v", err)
	}
	return resp.Token
}

func (f *portalFixture) do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDashboardRoute_ComposesForCallerRole(t *testing.T) {
	f := newPortalFixture(t)
	dashboards := handler.NewDashboardHandler(services.NewPortalDashboardService(), logger.New("error"))
	route := f.guard.RequireRoles(domain.Roles, http.HandlerFunc(dashboards.Get))

	token := f.login(t, "nurse.johnson@hospital.com", "nurse123", domain.RoleNurse)
	rec := f.do(t, route, http.MethodGet, "/api/dashboard", token, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var dash domain.Dashboard
	if err := json.NewDecoder(rec.Body).Decode(&dash); err != nil {
		t.Fatalf("invalid dashboard body: %v", err)
	}
	if dash.Role != domain.RoleNurse {
		t.Errorf("dashboard composed for %s, caller is a nurse", dash.Role)
	}
	if len(dash.Stats) == 0 || len(dash.QuickActions) == 0 {
		t.Error("dashboard is missing tiles or actions")
	}
}

func TestTaskRoutes_CareTeamOnly(t *testing.T) {
	f := newPortalFixture(t)
	tasks := handler.NewTaskHandler(services.NewTaskService(repository.NewMemoryTaskRepository()), logger.New("error"))

	mux := http.NewServeMux()
	mux.Handle("GET /api/tasks", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.List)))
	mux.Handle("POST /api/tasks", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.Add)))
	mux.Handle("PATCH /api/tasks/{id}", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.Transition)))
	mux.Handle("DELETE /api/tasks/{id}", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.Remove)))

	nurse := f.login(t, "nurse.johnson@hospital.com", "nurse123", domain.RoleNurse)
	doctor := f.login(t, "dr.smith@hospital.com", "doctor123", domain.RoleDoctor)
	patient := f.login(t, "patient@email.com", "patient123", domain.RolePatient)

	rec := f.do(t, mux, http.MethodPost, "/api/tasks", nurse, map[string]string{
		"description": "Check vitals for room 204",
		"priority":    "high",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("nurse add failed: %d %s", rec.Code, rec.Body.String())
	}
	var task domain.Task
	if err := json.NewDecoder(rec.Body).Decode(&task); err != nil {
		t.Fatalf("invalid task body: %v", err)
	}

	// Doctors share the task manager with nurses.
	rec = f.do(t, mux, http.MethodGet, "/api/tasks", doctor, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("doctor list failed: %d", rec.Code)
	}
	rec = f.do(t, mux, http.MethodPatch, "/api/tasks/"+task.ID, doctor, map[string]string{
		"status": "completed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("doctor transition failed: %d %s", rec.Code, rec.Body.String())
	}

	// Patients are silently redirected off the task manager.
	rec = f.do(t, mux, http.MethodGet, "/api/tasks", patient, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected patient redirect, got %d", rec.Code)
	}

	rec = f.do(t, mux, http.MethodDelete, "/api/tasks/"+task.ID, nurse, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("nurse delete failed: %d", rec.Code)
	}
	var result map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("invalid delete body: %v", err)
	}
	if !result["found"] {
		t.Error("expected the delete to report the task existed")
	}
}

// Status vocabularies are closed: a transition outside the known set is
// rejected before anything is stored.
func TestTransitionRoutes_RejectUnknownStatus(t *testing.T) {
	f := newPortalFixture(t)
	log := logger.New("error")

	tasks := handler.NewTaskHandler(services.NewTaskService(repository.NewMemoryTaskRepository()), log)
	appointments := handler.NewAppointmentHandler(
		services.NewAppointmentService(repository.NewMemoryAppointmentRepository(), repository.NewMemoryOutbox()),
		log,
	)
	assignments := handler.NewAssignmentHandler(services.NewAssignmentService(repository.NewMemoryAssignmentRepository()), log)

	mux := http.NewServeMux()
	mux.Handle("POST /api/tasks", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.Add)))
	mux.Handle("GET /api/tasks", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.List)))
	mux.Handle("PATCH /api/tasks/{id}", f.guard.RequirePage("/tasks", http.HandlerFunc(tasks.Transition)))
	mux.Handle("POST /api/appointments", f.guard.RequirePage("/appointments", http.HandlerFunc(appointments.Book)))
	mux.Handle("PATCH /api/appointments/{id}", f.guard.RequirePage("/appointments", http.HandlerFunc(appointments.Transition)))
	mux.Handle("POST /api/assignments", f.guard.RequirePage("/nurse-assignment", http.HandlerFunc(assignments.Add)))
	mux.Handle("PATCH /api/assignments/{id}", f.guard.RequirePage("/nurse-assignment", http.HandlerFunc(assignments.Transition)))

	nurse := f.login(t, "nurse.johnson@hospital.com", "nurse123", domain.RoleNurse)
	patient := f.login(t, "patient@email.com", "patient123", domain.RolePatient)

	rec := f.do(t, mux, http.MethodPost, "/api/tasks", nurse, map[string]string{"description": "Restock supplies"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("task add failed: %d", rec.Code)
	}
	var task domain.Task
	if err := json.NewDecoder(rec.Body).Decode(&task); err != nil {
		t.Fatalf("invalid task body: %v", err)
	}

	rec = f.do(t, mux, http.MethodPatch, "/api/tasks/"+task.ID, nurse, map[string]string{"status": "archived"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown task status, got %d", rec.Code)
	}

	// The stored status is untouched by the rejected transition.
	rec = f.do(t, mux, http.MethodGet, "/api/tasks", nurse, nil)
	var list []domain.Task
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("invalid list body: %v", err)
	}
	if len(list) != 1 || list[0].Status != domain.TaskPending {
		t.Errorf("rejected transition changed stored state: %+v", list)
	}

	rec = f.do(t, mux, http.MethodPost, "/api/appointments", patient, services.BookingRequest{
		Doctor: "Dr. Smith", Department: "Cardiology", Date: "2026-09-15", Time: "10:30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking failed: %d", rec.Code)
	}
	var apt domain.Appointment
	if err := json.NewDecoder(rec.Body).Decode(&apt); err != nil {
		t.Fatalf("invalid appointment body: %v", err)
	}
	rec = f.do(t, mux, http.MethodPatch, "/api/appointments/"+apt.ID, patient, map[string]string{"status": "rescheduled"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown appointment status, got %d", rec.Code)
	}

	rec = f.do(t, mux, http.MethodPost, "/api/assignments", nurse, map[string]string{"doctor": "Dr. Smith", "nurse": "Sarah Johnson"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("assignment add failed: %d", rec.Code)
	}
	var assignment domain.Assignment
	if err := json.NewDecoder(rec.Body).Decode(&assignment); err != nil {
		t.Fatalf("invalid assignment body: %v", err)
	}
	rec = f.do(t, mux, http.MethodPatch, "/api/assignments/"+assignment.ID, nurse, map[string]string{"status": "paused"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown assignment status, got %d", rec.Code)
	}
}

func TestAvailabilityRoute_DoctorsWriteOthersRead(t *testing.T) {
	f := newPortalFixture(t)
	availability := handler.NewAvailabilityHandler(
		services.NewAvailabilityService(repository.NewMemoryAvailabilityRepository()),
		logger.New("error"),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /api/availability", f.guard.RequirePage("/doctor-availability", http.HandlerFunc(availability.List)))
	mux.Handle("PUT /api/availability", f.guard.RequirePage("/doctor-availability", http.HandlerFunc(availability.SetStatus)))

	doctor := f.login(t, "dr.smith@hospital.com", "doctor123", domain.RoleDoctor)
	nurse := f.login(t, "nurse.johnson@hospital.com", "nurse123", domain.RoleNurse)

	rec := f.do(t, mux, http.MethodPut, "/api/availability", doctor, services.AvailabilityUpdate{
		Status: domain.DoctorUnavailable,
		Note:   "On call elsewhere",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("doctor update failed: %d %s", rec.Code, rec.Body.String())
	}

	// The page admits nurses, but writing is a doctor action.
	rec = f.do(t, mux, http.MethodPut, "/api/availability", nurse, services.AvailabilityUpdate{
		Status: domain.DoctorAvailable,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a nurse write, got %d", rec.Code)
	}

	rec = f.do(t, mux, http.MethodGet, "/api/availability", nurse, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("nurse read failed: %d", rec.Code)
	}
	var board []domain.Availability
	if err := json.NewDecoder(rec.Body).Decode(&board); err != nil {
		t.Fatalf("invalid board body: %v", err)
	}
	if len(board) != 1 || board[0].Status != domain.DoctorUnavailable {
		t.Errorf("unexpected board state: %+v", board)
	}
}

func TestAppointmentRoutes_ScopedToCaller(t *testing.T) {
	f := newPortalFixture(t)
	appointments := handler.NewAppointmentHandler(
		services.NewAppointmentService(repository.NewMemoryAppointmentRepository(), repository.NewMemoryOutbox()),
		logger.New("error"),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /api/appointments", f.guard.RequirePage("/appointments", http.HandlerFunc(appointments.List)))
	mux.Handle("POST /api/appointments", f.guard.RequirePage("/appointments", http.HandlerFunc(appointments.Book)))

	patient := f.login(t, "patient@email.com", "patient123", domain.RolePatient)

	rec := f.do(t, mux, http.MethodPost, "/api/appointments", patient, services.BookingRequest{
		Doctor:     "Dr. Smith",
		Department: "Cardiology",
		Date:       "2026-09-15",
		Time:       "10:30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("booking failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, mux, http.MethodGet, "/api/appointments", patient, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d", rec.Code)
	}
	var list []domain.Appointment
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("invalid list body: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one appointment, got %d", len(list))
	}
	if list[0].PatientID == "" {
		t.Error("booking did not record the caller as the patient")
	}
}
