package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"travel-backend/internal/cache"
	"travel-backend/internal/models"
	"travel-backend/internal/repositories"
	"travel-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService handles online customer payments. A captured order is
// what appends a UPI Payment row to the booking's ledger; the webhook path
// is idempotent so replays cannot double-post.
type RazorpayService struct {
	transactionRepo *repositories.OnlineTransactionRepository
	bookingRepo     *repositories.BookingRepository
	paymentRepo     *repositories.PaymentRepository
	keyID           string
	keySecret       string
	webhookSecret   string
	now             func() time.Time
}

func NewRazorpayService(
	keyID, keySecret, webhookSecret string,
	transactionRepo *repositories.OnlineTransactionRepository,
	bookingRepo *repositories.BookingRepository,
	paymentRepo *repositories.PaymentRepository,
) *RazorpayService {
	return &RazorpayService{
		transactionRepo: transactionRepo,
		bookingRepo:     bookingRepo,
		paymentRepo:     paymentRepo,
		keyID:           keyID,
		keySecret:       keySecret,
		webhookSecret:   webhookSecret,
		now:             timeutil.Now,
	}
}

// IsEnabled reports whether online payments are configured.
func (s *RazorpayService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *RazorpayService) getClient() *razorpay.Client {
	if !s.IsEnabled() {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// CreateOrder opens a Razorpay order against a live booking and records the
// pending transaction.
func (s *RazorpayService) CreateOrder(ctx context.Context, req *models.CreateOnlinePaymentRequest) (*models.CreateOrderResponse, error) {
	if req.Amount <= 0 {
		return nil, invalidField("amount", "payment amount must be positive")
	}

	client := s.getClient()
	if client == nil {
		return nil, fmt.Errorf("online payments are not configured")
	}

	booking, err := s.bookingRepo.Get(ctx, req.BookingID)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.IsDeleted {
		return nil, ErrNotFound
	}

	// Razorpay amounts are in paise.
	amountPaise := int(req.Amount * 100)

	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("bk_%d_%d", booking.ID, s.now().Unix()),
		"notes": map[string]interface{}{
			"booking_id": booking.ID,
			"trip":       booking.Title,
		},
	}

	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	txn := &models.OnlineTransaction{
		BookingID: booking.ID,
		OrderID:   orderID,
		Amount:    req.Amount,
		Status:    "created",
	}
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	return &models.CreateOrderResponse{
		OrderID:   orderID,
		Amount:    req.Amount,
		Currency:  "INR",
		KeyID:     s.keyID,
		BookingID: booking.ID,
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature Razorpay sends
// with each webhook delivery.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // Skip verification if not configured
	}

	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// ProcessWebhook routes Razorpay webhook events.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, event string, payload map[string]interface{}) error {
	switch event {
	case "payment.captured":
		return s.handlePaymentCaptured(ctx, payload)
	case "payment.failed":
		return s.handlePaymentFailed(ctx, payload)
	default:
		log.Printf("[Razorpay] Unhandled webhook event: %s", event)
		return nil
	}
}

func (s *RazorpayService) handlePaymentCaptured(ctx context.Context, payload map[string]interface{}) error {
	entity := paymentEntity(payload)

	orderID, _ := entity["order_id"].(string)
	paymentID, _ := entity["id"].(string)
	if orderID == "" {
		return fmt.Errorf("missing order_id in webhook")
	}

	// MarkCaptured flips exactly one row per order; a replayed delivery
	// loses the race and posts nothing.
	won, err := s.transactionRepo.MarkCaptured(ctx, orderID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if !won {
		log.Printf("[Razorpay] Payment already processed: %s", orderID)
		return nil
	}

	txn, err := s.transactionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("transaction not found: %w", err)
	}

	payment := &models.Payment{
		BookingID: txn.BookingID,
		Amount:    txn.Amount,
		Date:      s.now(),
		Mode:      models.ModeUPI,
		Reference: paymentID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return fmt.Errorf("failed to post payment to ledger: %w", err)
	}

	log.Printf("[Razorpay] Posted %.2f to booking %d ledger (order %s)", txn.Amount, txn.BookingID, orderID)
	cache.InvalidateBookingCaches(ctx)
	return nil
}

func (s *RazorpayService) handlePaymentFailed(ctx context.Context, payload map[string]interface{}) error {
	entity := paymentEntity(payload)

	orderID, _ := entity["order_id"].(string)
	if orderID == "" {
		return nil
	}

	if err := s.transactionRepo.MarkFailed(ctx, orderID); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return nil
}

// paymentEntity digs the payment entity out of Razorpay's nested webhook
// payload shape.
func paymentEntity(payload map[string]interface{}) map[string]interface{} {
	wrapper, ok := payload["payment"].(map[string]interface{})
	if !ok {
		wrapper = payload
	}
	entity, ok := wrapper["entity"].(map[string]interface{})
	if !ok {
		entity = wrapper
	}
	return entity
}

// ListBookingTransactions returns the online payment attempts for a booking.
func (s *RazorpayService) ListBookingTransactions(ctx context.Context, bookingID int) ([]models.OnlineTransaction, error) {
	return s.transactionRepo.ListByBooking(ctx, bookingID)
}
