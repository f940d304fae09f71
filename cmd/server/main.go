package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/nac3nt/Appoint/internal/api"
	"github.com/nac3nt/Appoint/internal/auth"
	"github.com/nac3nt/Appoint/internal/repository"
	"github.com/nac3nt/Appoint/internal/service"
	"github.com/nac3nt/Appoint/internal/utils"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	availabilityRepo := repository.NewAvailabilityRepository(database)
	requestRepo := repository.NewRequestRepository(database)
	appointmentRepo := repository.NewAppointmentRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)
	jobRepo := repository.NewJobRepository(database)

	locks := service.NewScheduleLock()
	sender := service.NewSenderService()

	authSvc := service.NewAuthService(userRepo)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, appointmentRepo, locks)
	requestSvc := service.NewRequestService(requestRepo)
	appointmentSvc := service.NewAppointmentService(appointmentRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, sender)
	assignmentSvc := service.NewAssignmentService(requestRepo, availabilityRepo, appointmentRepo, userRepo, notificationSvc, locks)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	doctorHandler := api.NewDoctorHandler(availabilitySvc, appointmentSvc)
	patientHandler := api.NewPatientHandler(requestSvc, appointmentSvc)
	adminHandler := api.NewAdminHandler(requestSvc, assignmentSvc, appointmentSvc, userRepo)
	notificationHandler := api.NewNotificationHandler(notificationSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Doctor endpoints
	doctor := r.PathPrefix("/api/doctor").Subrouter()
	doctor.Use(auth.Middleware, auth.RequireRole(utils.RoleDoctor))
	doctor.HandleFunc("/availability", doctorHandler.AddAvailability).Methods("POST")
	doctor.HandleFunc("/availability", doctorHandler.ListAvailability).Methods("GET")
	doctor.HandleFunc("/availability/{id}", doctorHandler.DeleteAvailability).Methods("DELETE")
	doctor.HandleFunc("/my-appointments", doctorHandler.ListAppointments).Methods("GET")

	// Patient endpoints
	patient := r.PathPrefix("/api/patient").Subrouter()
	patient.Use(auth.Middleware, auth.RequireRole(utils.RolePatient))
	patient.HandleFunc("/request", patientHandler.CreateRequest).Methods("POST")
	patient.HandleFunc("/my-requests", patientHandler.ListRequests).Methods("GET")
	patient.HandleFunc("/my-appointments", patientHandler.ListAppointments).Methods("GET")

	// Admin endpoints
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.Middleware, auth.RequireRole(utils.RoleAdmin))
	admin.HandleFunc("/pending-requests", adminHandler.PendingRequests).Methods("GET")
	admin.HandleFunc("/available-doctors", adminHandler.AvailableDoctors).Methods("GET")
	admin.HandleFunc("/assign", adminHandler.Assign).Methods("POST")
	admin.HandleFunc("/all-appointments", adminHandler.AllAppointments).Methods("GET")
	admin.HandleFunc("/all-users", adminHandler.AllUsers).Methods("GET")

	// Notification endpoints (any authenticated role)
	notifications := r.PathPrefix("/api/notifications").Subrouter()
	notifications.Use(auth.Middleware)
	notifications.HandleFunc("", notificationHandler.List).Methods("GET")
	notifications.HandleFunc("/count", notificationHandler.Count).Methods("GET")
	notifications.HandleFunc("/{id}", notificationHandler.Delete).Methods("DELETE")

	c := cron.New()
	if _, err := c.AddFunc("@every 10m", func() {
		if err := jobSvc.CompleteElapsedAppointments(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule completion job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler)))
}
