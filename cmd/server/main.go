package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"travel-backend/internal/auth"
	"travel-backend/internal/cache"
	"travel-backend/internal/captcha"
	"travel-backend/internal/config"
	"travel-backend/internal/database"
	"travel-backend/internal/db"
	"travel-backend/internal/documents"
	"travel-backend/internal/handlers"
	"travel-backend/internal/health"
	h "travel-backend/internal/http"
	"travel-backend/internal/middleware"
	"travel-backend/internal/monitoring"
	"travel-backend/internal/notify"
	"travel-backend/internal/repositories"
	"travel-backend/internal/services"
	"travel-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (dashboard will compute on every request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations on startup
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring dashboard server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize JWT manager (validate-only; tokens come from the SSO service)
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	inquiryRepo := repositories.NewInquiryRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	bookingRepo := repositories.NewBookingRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	expenseRepo := repositories.NewExpenseRepository(pool)
	conversionRepo := repositories.NewConversionRepository(pool)
	auditLogRepo := repositories.NewAuditLogRepository(pool)
	subscriberRepo := repositories.NewSubscriberRepository(pool)
	jobRepo := repositories.NewJobRepository(pool)
	onlineTransactionRepo := repositories.NewOnlineTransactionRepository(pool)

	// Lead alert channels fall back to log-only mocks when unconfigured
	var emailSender notify.EmailSender
	if cfg.Notify.EmailEndpoint != "" && cfg.Notify.EmailAPIKey != "" {
		emailSender = notify.NewHTTPEmailSender(cfg.Notify.EmailEndpoint, cfg.Notify.EmailAPIKey, cfg.Notify.LeadInbox)
	} else {
		log.Println("WARNING: email API not configured, lead alerts will only print to logs")
		emailSender = &notify.MockEmailSender{}
	}
	var chatNotifier notify.ChatNotifier
	if cfg.Notify.ChatWebhook != "" {
		chatNotifier = notify.NewWebhookChatNotifier(cfg.Notify.ChatWebhook)
	} else {
		chatNotifier = &notify.MockChatNotifier{}
	}
	dispatcher := notify.NewDispatcher(emailSender, chatNotifier)

	// Captcha gate on the public lead form
	var verifier captcha.Verifier = captcha.NilVerifier{}
	if cfg.Captcha.Secret != "" && cfg.Captcha.VerifyURL != "" {
		verifier = captcha.NewHTTPVerifier(cfg.Captcha.VerifyURL, cfg.Captcha.Secret, cfg.Captcha.MinScore)
	} else {
		log.Println("WARNING: captcha not configured, lead form accepts all submissions")
	}

	// Ledger export archive (optional)
	var uploader storage.Uploader
	if r2, err := storage.NewR2Uploader(ctx, cfg); err != nil {
		log.Printf("[Storage] Export archive unavailable: %v", err)
	} else if r2 != nil {
		uploader = r2
	}

	// Initialize services
	inquiryService := services.NewInquiryService(inquiryRepo, auditLogRepo, verifier, dispatcher)
	customerService := services.NewCustomerService(customerRepo, auditLogRepo)
	ledgerService := services.NewLedgerService(bookingRepo, paymentRepo, expenseRepo, auditLogRepo)
	conversionService := services.NewConversionService(conversionRepo, auditLogRepo)
	dashboardService := services.NewDashboardService(inquiryRepo, bookingRepo, paymentRepo, subscriberRepo, jobRepo)
	auditService := services.NewAuditService(auditLogRepo)
	subscriberService := services.NewSubscriberService(subscriberRepo)
	jobService := services.NewJobService(jobRepo)
	razorpayService := services.NewRazorpayService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
		onlineTransactionRepo,
		bookingRepo,
		paymentRepo,
	)
	reportService := services.NewReportService(
		bookingRepo,
		paymentRepo,
		expenseRepo,
		customerRepo,
		documents.NewPDFReceiptRenderer("Travel Agency"),
		uploader,
	)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	customerHandler := handlers.NewCustomerHandler(customerService, ledgerService)
	bookingHandler := handlers.NewBookingHandler(ledgerService, conversionService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	auditLogHandler := handlers.NewAuditLogHandler(auditService)
	subscriberHandler := handlers.NewSubscriberHandler(subscriberService)
	jobHandler := handlers.NewJobHandler(jobService)
	razorpayHandler := handlers.NewRazorpayHandler(razorpayService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		inquiryHandler,
		customerHandler,
		bookingHandler,
		ledgerHandler,
		dashboardHandler,
		auditLogHandler,
		subscriberHandler,
		jobHandler,
		razorpayHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
