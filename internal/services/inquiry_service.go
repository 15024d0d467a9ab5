package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"travel-backend/internal/cache"
	"travel-backend/internal/captcha"
	"travel-backend/internal/metrics"
	"travel-backend/internal/models"
	"travel-backend/internal/notify"
	"travel-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
)

// DuplicateWindow is how long after a submission the same phone number is
// refused a second active lead.
const DuplicateWindow = 15 * time.Minute

// InquiryStore is the persistence surface the pipeline engine needs.
type InquiryStore interface {
	Create(ctx context.Context, q *models.Inquiry) error
	Get(ctx context.Context, id int) (*models.Inquiry, error)
	List(ctx context.Context, trashed bool) ([]*models.Inquiry, error)
	FindActiveByPhoneSince(ctx context.Context, phone string, cutoff time.Time) (*models.Inquiry, error)
	SetStatus(ctx context.Context, id int, status models.InquiryStatus) error
	MarkRead(ctx context.Context, id int) error
	SoftDelete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	PermanentDelete(ctx context.Context, id int) error
}

// AuditWriter appends operator actions to the audit trail. Audit failures
// are logged, never propagated: the mutation itself has already happened.
type AuditWriter interface {
	Create(ctx context.Context, a *models.AuditLog) error
}

// InquiryService is the pipeline engine: it owns lead capture, the status
// state machine, the read flag and the trash lifecycle.
type InquiryService struct {
	store      InquiryStore
	audit      AuditWriter
	verifier   captcha.Verifier
	dispatcher *notify.Dispatcher
	now        func() time.Time
}

func NewInquiryService(store InquiryStore, audit AuditWriter, verifier captcha.Verifier, dispatcher *notify.Dispatcher) *InquiryService {
	return &InquiryService{
		store:      store,
		audit:      audit,
		verifier:   verifier,
		dispatcher: dispatcher,
		now:        timeutil.Now,
	}
}

// CreateLead captures a public form submission. Validation failures return a
// typed error; a duplicate submission is a recognized outcome and comes back
// as a non-success response with a polite message, not an error.
func (s *InquiryService) CreateLead(ctx context.Context, req *models.CreateInquiryRequest) (*models.CreateInquiryResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, invalidField("name", "name is required")
	}
	if len(strings.TrimSpace(req.Phone)) < 10 {
		return nil, invalidField("phone", "phone must be at least 10 characters")
	}

	if req.Type == "" {
		req.Type = models.TypeGeneral
	}
	publicType := false
	for _, t := range models.PublicInquiryTypes {
		if req.Type == t {
			publicType = true
			break
		}
	}
	if !publicType {
		return nil, invalidField("type", fmt.Sprintf("unknown inquiry type %q", req.Type))
	}

	if s.verifier != nil {
		ok, err := s.verifier.Verify(ctx, req.CaptchaToken)
		if err != nil {
			// Captcha provider being down must not drop leads; let it pass
			// and rely on the duplicate guard.
			log.Printf("[Inquiry] Captcha verification error, allowing submission: %v", err)
		} else if !ok {
			metrics.CaptchaFailures.Inc()
			return nil, ErrCaptchaFailed
		}
	}

	phone := strings.TrimSpace(req.Phone)
	cutoff := s.now().Add(-DuplicateWindow)
	existing, err := s.store.FindActiveByPhoneSince(ctx, phone, cutoff)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if existing != nil {
		metrics.DuplicateLeadsTotal.Inc()
		return &models.CreateInquiryResponse{
			Success: false,
			Error:   ErrDuplicateSubmission.Error(),
		}, nil
	}

	inquiry := &models.Inquiry{
		Name:        strings.TrimSpace(req.Name),
		Phone:       phone,
		Email:       strings.TrimSpace(req.Email),
		Destination: strings.TrimSpace(req.Destination),
		Travelers:   req.Travelers,
		Budget:      strings.TrimSpace(req.Budget),
		Message:     strings.TrimSpace(req.Message),
		Type:        req.Type,
		PackageID:   req.PackageID,
		Status:      models.StatusPending,
	}

	if req.StartDate != "" {
		start, err := timeutil.ParseInIST(timeutil.DateLayout, req.StartDate)
		if err != nil {
			return nil, invalidField("start_date", "start date must be YYYY-MM-DD")
		}
		inquiry.StartDate = &start
	}

	if err := s.store.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	metrics.LeadsCreatedTotal.WithLabelValues(string(inquiry.Type)).Inc()
	cache.InvalidateInquiryCaches(ctx)

	// Alerts are best effort; the lead is already saved.
	s.dispatcher.DispatchLead(inquiry)

	return &models.CreateInquiryResponse{Success: true, InquiryID: inquiry.ID}, nil
}

func (s *InquiryService) GetInquiry(ctx context.Context, id int) (*models.Inquiry, error) {
	inquiry, err := s.store.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return inquiry, err
}

// ListInquiries returns the active board or, with trashed=true, the trash view.
func (s *InquiryService) ListInquiries(ctx context.Context, trashed bool) ([]*models.Inquiry, error) {
	return s.store.List(ctx, trashed)
}

// SetStatus moves a lead between pipeline stages. The transition table allows
// every move today, but it is still consulted so the rule lives in one place.
func (s *InquiryService) SetStatus(ctx context.Context, id int, status models.InquiryStatus, actor string) error {
	if !status.Valid() {
		return invalidField("status", fmt.Sprintf("unknown status %q", status))
	}

	current, err := s.store.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if !models.CanTransition(current.Status, status) {
		return invalidField("status", fmt.Sprintf("cannot move from %s to %s", current.Status, status))
	}

	if err := s.store.SetStatus(ctx, id, status); err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		return err
	}

	recordAudit(ctx, s.audit, actor, "inquiry.status", "inquiry", id,
		fmt.Sprintf("%s -> %s", current.Status, status))
	cache.InvalidateInquiryCaches(ctx)
	return nil
}

func (s *InquiryService) MarkRead(ctx context.Context, id int) error {
	err := s.store.MarkRead(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err == nil {
		cache.InvalidateInquiryCaches(ctx)
	}
	return err
}

// MoveToTrash soft-deletes a lead. The record stays restorable and keeps its
// pipeline status; only the trash flag and timestamp change.
func (s *InquiryService) MoveToTrash(ctx context.Context, id int, actor string) error {
	err := s.store.SoftDelete(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	recordAudit(ctx, s.audit, actor, "inquiry.trash", "inquiry", id, "")
	cache.InvalidateInquiryCaches(ctx)
	return nil
}

func (s *InquiryService) RestoreFromTrash(ctx context.Context, id int, actor string) error {
	err := s.store.Restore(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	recordAudit(ctx, s.audit, actor, "inquiry.restore", "inquiry", id, "")
	cache.InvalidateInquiryCaches(ctx)
	return nil
}

// DeleteForever permanently removes a lead. Only trashed leads qualify; a
// live lead comes back as not found rather than being deleted.
func (s *InquiryService) DeleteForever(ctx context.Context, id int, actor string) error {
	err := s.store.PermanentDelete(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	recordAudit(ctx, s.audit, actor, "inquiry.purge", "inquiry", id, "")
	cache.InvalidateInquiryCaches(ctx)
	return nil
}
