package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medora-health/portal-access-service/internal/adapters/handler"
	"github.com/medora-health/portal-access-service/internal/adapters/middleware"
	"github.com/medora-health/portal-access-service/internal/adapters/repository"
	"github.com/medora-health/portal-access-service/internal/adapters/session"
	"github.com/medora-health/portal-access-service/internal/config"
	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()
	log := logger.New(cfg.LogLevel)

	// Credential records: Postgres when configured, the seeded demo
	// set otherwise.
	var db *sql.DB
	var userRepo ports.UserRepository
	var outboxRepo ports.OutboxRepository
	var prescriptionRepo ports.PrescriptionRepository

	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
		defer db.Close()

		sqlRepo := repository.NewSQLRepository(db)
		if err := sqlRepo.CreateSchema(ctx); err != nil {
			log.WithError(err).Fatal("failed to create schema")
		}
		userRepo = sqlRepo
		outboxRepo = sqlRepo
		prescriptionRepo = repository.NewMemoryPrescriptionRepository()
	} else {
		log.Info("no database configured, using seeded demo records")
		userRepo = repository.NewSeededUserRepository()
		outboxRepo = repository.NewMemoryOutbox()
		prescriptionRepo = seededPrescriptions(ctx)
	}

	// Durable session slot: Redis when configured, process memory
	// otherwise.
	var redisClient *redis.Client
	var sessions ports.SessionStore

	if cfg.RedisAddress != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		log.Info("connected to Redis")
		sessions = session.NewRedisStore(redisClient)
	} else {
		log.Info("no Redis configured, sessions are process-local")
		sessions = session.NewMemoryStore()
	}

	var verifier ports.CredentialVerifier
	if cfg.VerifierPolicy == "remote" {
		verifier = services.NewRemoteVerifier(cfg.AuthEndpoint)
		log.Infof("credential verification delegated to %s", cfg.AuthEndpoint)
	} else {
		verifier = services.NewLocalVerifier(userRepo)
	}

	authService := services.NewPortalAuthService(verifier, sessions, cfg.JWTPrivateKey)
	registrationService := services.NewRegistrationService(userRepo, sessions, cfg.JWTPrivateKey)
	dashboardService := services.NewPortalDashboardService()
	taskService := services.NewTaskService(repository.NewMemoryTaskRepository())
	appointmentService := services.NewAppointmentService(repository.NewMemoryAppointmentRepository(), outboxRepo)
	assignmentService := services.NewAssignmentService(repository.NewMemoryAssignmentRepository())
	availabilityService := services.NewAvailabilityService(repository.NewMemoryAvailabilityRepository())
	prescriptionService := services.NewPrescriptionService(prescriptionRepo)

	guard := middleware.NewAuthMiddleware(cfg.JWTPublicKey, sessions, log)

	authHandler := handler.NewAuthHandler(authService, log)
	registrationHandler := handler.NewRegistrationHandler(registrationService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	taskHandler := handler.NewTaskHandler(taskService, log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService, log)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService, log)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)
	mux.Handle("/metrics", promhttp.Handler())

	// Public auth endpoints
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/signup", registrationHandler.Signup)

	allRoles := domain.Roles
	mux.Handle("POST /api/auth/logout", guard.RequireRoles(allRoles, http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/session", guard.RequireRoles(allRoles, http.HandlerFunc(authHandler.Session)))
	mux.Handle("GET /api/dashboard", guard.RequireRoles(allRoles, http.HandlerFunc(dashboardHandler.Get)))

	// Feature endpoints, gated by the page table
	mux.Handle("GET /api/tasks", guard.RequirePage("/tasks", http.HandlerFunc(taskHandler.List)))
	mux.Handle("POST /api/tasks", guard.RequirePage("/tasks", http.HandlerFunc(taskHandler.Add)))
	mux.Handle("PATCH /api/tasks/{id}", guard.RequirePage("/tasks", http.HandlerFunc(taskHandler.Transition)))
	mux.Handle("DELETE /api/tasks/{id}", guard.RequirePage("/tasks", http.HandlerFunc(taskHandler.Remove)))

	mux.Handle("GET /api/appointments", guard.RequirePage("/appointments", http.HandlerFunc(appointmentHandler.List)))
	mux.Handle("POST /api/appointments", guard.RequirePage("/appointments", http.HandlerFunc(appointmentHandler.Book)))
	mux.Handle("PATCH /api/appointments/{id}", guard.RequirePage("/appointments", http.HandlerFunc(appointmentHandler.Transition)))
	mux.Handle("DELETE /api/appointments/{id}", guard.RequirePage("/appointments", http.HandlerFunc(appointmentHandler.Remove)))

	mux.Handle("GET /api/assignments", guard.RequirePage("/nurse-assignment", http.HandlerFunc(assignmentHandler.List)))
	mux.Handle("POST /api/assignments", guard.RequirePage("/nurse-assignment", http.HandlerFunc(assignmentHandler.Add)))
	mux.Handle("PATCH /api/assignments/{id}", guard.RequirePage("/nurse-assignment", http.HandlerFunc(assignmentHandler.Transition)))
	mux.Handle("DELETE /api/assignments/{id}", guard.RequirePage("/nurse-assignment", http.HandlerFunc(assignmentHandler.Remove)))

	mux.Handle("GET /api/availability", guard.RequirePage("/doctor-availability", http.HandlerFunc(availabilityHandler.List)))
	mux.Handle("PUT /api/availability", guard.RequirePage("/doctor-availability", http.HandlerFunc(availabilityHandler.SetStatus)))

	mux.Handle("GET /api/prescriptions", guard.RequirePage("/prescriptions", http.HandlerFunc(prescriptionHandler.List)))

	chain := middleware.CORS(cfg.AllowedOrigins)(middleware.Metrics(mux))

	log.Infof("starting portal access service on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, chain); err != nil {
		log.WithError(err).Fatal("could not start server")
	}
}

// seededPrescriptions preloads the demo patient's prescription list.
func seededPrescriptions(ctx context.Context) ports.PrescriptionRepository {
	repo := repository.NewMemoryPrescriptionRepository()
	demo := []domain.Prescription{
		{ID: "rx-1", PatientID: "u-jdoe", Medicine: "Lisinopril 10mg", Doctor: "Dr. Smith", Issued: "2025-06-10", Status: domain.PrescriptionActive, Instructions: "Take once daily with food"},
		{ID: "rx-2", PatientID: "u-jdoe", Medicine: "Metformin 500mg", Doctor: "Dr. Johnson", Issued: "2025-05-15", Status: domain.PrescriptionActive, Instructions: "Take twice daily with meals"},
		{ID: "rx-3", PatientID: "u-jdoe", Medicine: "Atorvastatin 20mg", Doctor: "Dr. Smith", Issued: "2025-04-20", Status: domain.PrescriptionExpired, Instructions: "Take once daily at bedtime"},
	}
	for _, p := range demo {
		_ = repo.Insert(ctx, p)
	}
	return repo
}
