package http

import (
	"net/http"

	"travel-backend/internal/handlers"
	"travel-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	inquiryHandler *handlers.InquiryHandler,
	customerHandler *handlers.CustomerHandler,
	bookingHandler *handlers.BookingHandler,
	ledgerHandler *handlers.LedgerHandler,
	dashboardHandler *handlers.DashboardHandler,
	auditLogHandler *handlers.AuditLogHandler,
	subscriberHandler *handlers.SubscriberHandler,
	jobHandler *handlers.JobHandler,
	razorpayHandler *handlers.RazorpayHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - website forms (no authentication)
	r.HandleFunc("/api/inquiries", inquiryHandler.CreateInquiry).Methods("POST")
	r.HandleFunc("/api/subscribers", subscriberHandler.Subscribe).Methods("POST")
	r.HandleFunc("/api/subscribers/unsubscribe", subscriberHandler.Unsubscribe).Methods("POST")
	r.HandleFunc("/api/careers", jobHandler.ListOpenJobs).Methods("GET")
	r.HandleFunc("/api/careers/{id}/apply", jobHandler.Apply).Methods("POST")

	// Razorpay webhook - authenticated by signature, not JWT
	r.HandleFunc("/api/payments/webhook", razorpayHandler.Webhook).Methods("POST")

	// Protected API routes - Lead pipeline
	inquiriesAPI := r.PathPrefix("/api/inquiries").Subrouter()
	inquiriesAPI.Use(authMiddleware.Authenticate)
	inquiriesAPI.HandleFunc("", inquiryHandler.ListInquiries).Methods("GET")
	inquiriesAPI.HandleFunc("/{id}", inquiryHandler.GetInquiry).Methods("GET")
	inquiriesAPI.HandleFunc("/{id}/status", inquiryHandler.UpdateStatus).Methods("PATCH")
	inquiriesAPI.HandleFunc("/{id}/read", inquiryHandler.MarkRead).Methods("PATCH")
	inquiriesAPI.HandleFunc("/{id}", inquiryHandler.MoveToTrash).Methods("DELETE")
	inquiriesAPI.HandleFunc("/{id}/restore", inquiryHandler.Restore).Methods("POST")
	inquiriesAPI.HandleFunc("/{id}/permanent", authMiddleware.RequireRole("admin")(http.HandlerFunc(inquiryHandler.DeleteForever)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(authMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/search", customerHandler.SearchByPhone).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/bookings", customerHandler.ListCustomerBookings).Methods("GET")

	// Protected API routes - Bookings and the financial ledger
	bookingsAPI := r.PathPrefix("/api/bookings").Subrouter()
	bookingsAPI.Use(authMiddleware.Authenticate)
	bookingsAPI.HandleFunc("", bookingHandler.ListBookings).Methods("GET")
	bookingsAPI.HandleFunc("/convert", bookingHandler.ConvertLead).Methods("POST")
	bookingsAPI.HandleFunc("/balance", ledgerHandler.PortfolioBalance).Methods("GET")
	bookingsAPI.HandleFunc("/{id}", bookingHandler.GetBooking).Methods("GET")
	bookingsAPI.HandleFunc("/{id}", bookingHandler.UpdateBooking).Methods("PUT")
	bookingsAPI.HandleFunc("/{id}", bookingHandler.DeleteBooking).Methods("DELETE")
	bookingsAPI.HandleFunc("/{id}/payments", ledgerHandler.AddPayment).Methods("POST")
	bookingsAPI.HandleFunc("/{id}/expenses", ledgerHandler.AddExpense).Methods("POST")
	bookingsAPI.HandleFunc("/{id}/transactions", razorpayHandler.ListBookingTransactions).Methods("GET")
	bookingsAPI.HandleFunc("/{id}/order", razorpayHandler.CreateOrder).Methods("POST")

	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("/{id}", ledgerHandler.UpdatePayment).Methods("PUT")
	paymentsAPI.HandleFunc("/{id}/receipt", reportHandler.PaymentReceipt).Methods("GET")

	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(authMiddleware.Authenticate)
	expensesAPI.HandleFunc("/{id}", ledgerHandler.UpdateExpense).Methods("PUT")
	expensesAPI.HandleFunc("/{id}", ledgerHandler.DeleteExpense).Methods("DELETE")

	// Protected API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetDashboard).Methods("GET")

	// Protected API routes - Audit trail (admin only)
	auditAPI := r.PathPrefix("/api/audit-logs").Subrouter()
	auditAPI.Use(authMiddleware.Authenticate)
	auditAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditLogHandler.ListAuditLogs)).ServeHTTP).Methods("GET")
	auditAPI.HandleFunc("/{type}/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(auditLogHandler.ListEntityAuditLogs)).ServeHTTP).Methods("GET")

	// Protected API routes - Marketing
	subscribersAPI := r.PathPrefix("/api/admin/subscribers").Subrouter()
	subscribersAPI.Use(authMiddleware.Authenticate)
	subscribersAPI.HandleFunc("", subscriberHandler.ListSubscribers).Methods("GET")

	jobsAPI := r.PathPrefix("/api/jobs").Subrouter()
	jobsAPI.Use(authMiddleware.Authenticate)
	jobsAPI.HandleFunc("", jobHandler.ListJobs).Methods("GET")
	jobsAPI.HandleFunc("", jobHandler.CreateJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}", jobHandler.UpdateJob).Methods("PUT")
	jobsAPI.HandleFunc("/{id}/applications", jobHandler.ListApplications).Methods("GET")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("/ledger.csv", reportHandler.ExportLedger).Methods("GET")

	// Health endpoint (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
