package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type fakeInquiryStore struct {
	inquiries map[int]*models.Inquiry
	nextID    int
	clock     time.Time
}

func newFakeInquiryStore() *fakeInquiryStore {
	return &fakeInquiryStore{
		inquiries: make(map[int]*models.Inquiry),
		nextID:    1,
		clock:     time.Now(),
	}
}

func (f *fakeInquiryStore) Create(ctx context.Context, q *models.Inquiry) error {
	q.ID = f.nextID
	f.nextID++
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	cp := *q
	f.inquiries[q.ID] = &cp
	return nil
}

func (f *fakeInquiryStore) Get(ctx context.Context, id int) (*models.Inquiry, error) {
	q, ok := f.inquiries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (f *fakeInquiryStore) List(ctx context.Context, trashed bool) ([]*models.Inquiry, error) {
	var out []*models.Inquiry
	for _, q := range f.inquiries {
		if q.IsDeleted == trashed {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInquiryStore) FindActiveByPhoneSince(ctx context.Context, phone string, cutoff time.Time) (*models.Inquiry, error) {
	for _, q := range f.inquiries {
		if q.Phone == phone && !q.IsDeleted && q.CreatedAt.After(cutoff) {
			cp := *q
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInquiryStore) SetStatus(ctx context.Context, id int, status models.InquiryStatus) error {
	q, ok := f.inquiries[id]
	if !ok || q.IsDeleted {
		return pgx.ErrNoRows
	}
	q.Status = status
	return nil
}

func (f *fakeInquiryStore) MarkRead(ctx context.Context, id int) error {
	q, ok := f.inquiries[id]
	if !ok || q.IsDeleted {
		return pgx.ErrNoRows
	}
	q.IsRead = true
	return nil
}

func (f *fakeInquiryStore) SoftDelete(ctx context.Context, id int) error {
	q, ok := f.inquiries[id]
	if !ok || q.IsDeleted {
		return pgx.ErrNoRows
	}
	q.IsDeleted = true
	// Each delete stamps a strictly later time, like CURRENT_TIMESTAMP does
	// across statements.
	f.clock = f.clock.Add(time.Second)
	at := f.clock
	q.DeletedAt = &at
	return nil
}

func (f *fakeInquiryStore) Restore(ctx context.Context, id int) error {
	q, ok := f.inquiries[id]
	if !ok || !q.IsDeleted {
		return pgx.ErrNoRows
	}
	q.IsDeleted = false
	q.DeletedAt = nil
	return nil
}

func (f *fakeInquiryStore) PermanentDelete(ctx context.Context, id int) error {
	q, ok := f.inquiries[id]
	if !ok || !q.IsDeleted {
		return pgx.ErrNoRows
	}
	delete(f.inquiries, id)
	return nil
}

type fakeAudit struct {
	entries []*models.AuditLog
}

func (f *fakeAudit) Create(ctx context.Context, a *models.AuditLog) error {
	f.entries = append(f.entries, a)
	return nil
}

type fakeVerifier struct {
	ok  bool
	err error
}

func (f fakeVerifier) Verify(ctx context.Context, token string) (bool, error) {
	return f.ok, f.err
}

func newTestInquiryService(store *fakeInquiryStore, audit *fakeAudit) *InquiryService {
	s := NewInquiryService(store, audit, nil, nil)
	return s
}

func validLeadRequest() *models.CreateInquiryRequest {
	return &models.CreateInquiryRequest{
		Name:        "Asha Verma",
		Phone:       "9876543210",
		Destination: "Ladakh",
		Type:        models.TypePlanMyTrip,
	}
}

func TestCreateLeadValidation(t *testing.T) {
	svc := newTestInquiryService(newFakeInquiryStore(), &fakeAudit{})

	cases := []struct {
		name   string
		mutate func(*models.CreateInquiryRequest)
	}{
		{"empty name", func(r *models.CreateInquiryRequest) { r.Name = "  " }},
		{"short phone", func(r *models.CreateInquiryRequest) { r.Phone = "12345" }},
		{"unknown type", func(r *models.CreateInquiryRequest) { r.Type = "SOMETHING_ELSE" }},
		{"wizard type on form", func(r *models.CreateInquiryRequest) { r.Type = models.TypeAIWizardLead }},
		{"bad start date", func(r *models.CreateInquiryRequest) { r.StartDate = "01/05/2026" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validLeadRequest()
			tc.mutate(req)
			if _, err := svc.CreateLead(context.Background(), req); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateLeadDefaultsToGeneral(t *testing.T) {
	store := newFakeInquiryStore()
	svc := newTestInquiryService(store, &fakeAudit{})

	req := validLeadRequest()
	req.Type = ""
	resp, err := svc.CreateLead(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}

	saved := store.inquiries[resp.InquiryID]
	if saved.Type != models.TypeGeneral {
		t.Fatalf("expected GENERAL, got %s", saved.Type)
	}
	if saved.Status != models.StatusPending {
		t.Fatalf("expected PENDING, got %s", saved.Status)
	}
}

func TestCreateLeadDuplicateWindow(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		age       time.Duration
		duplicate bool
	}{
		{"one minute ago", time.Minute, true},
		{"just inside the window", DuplicateWindow - time.Second, true},
		{"just outside the window", DuplicateWindow + time.Second, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeInquiryStore()
			svc := newTestInquiryService(store, &fakeAudit{})
			svc.now = func() time.Time { return base }

			store.Create(context.Background(), &models.Inquiry{
				Name:      "Asha Verma",
				Phone:     "9876543210",
				Status:    models.StatusPending,
				CreatedAt: base.Add(-tc.age),
			})

			resp, err := svc.CreateLead(context.Background(), validLeadRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.duplicate {
				if resp.Success {
					t.Fatal("expected duplicate rejection")
				}
				if resp.Error != ErrDuplicateSubmission.Error() {
					t.Fatalf("unexpected message: %q", resp.Error)
				}
				if len(store.inquiries) != 1 {
					t.Fatalf("duplicate must not persist, have %d rows", len(store.inquiries))
				}
			} else if !resp.Success {
				t.Fatalf("expected acceptance outside window, got %+v", resp)
			}
		})
	}
}

func TestCreateLeadTrashedDoesNotBlock(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeInquiryStore()
	svc := newTestInquiryService(store, &fakeAudit{})
	svc.now = func() time.Time { return base }

	store.Create(context.Background(), &models.Inquiry{
		Name:      "Asha Verma",
		Phone:     "9876543210",
		IsDeleted: true,
		CreatedAt: base.Add(-time.Minute),
	})

	resp, err := svc.CreateLead(context.Background(), validLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("trashed lead must not count as duplicate, got %+v", resp)
	}
}

func TestCreateLeadCaptcha(t *testing.T) {
	store := newFakeInquiryStore()
	svc := newTestInquiryService(store, &fakeAudit{})

	svc.verifier = fakeVerifier{ok: false}
	if _, err := svc.CreateLead(context.Background(), validLeadRequest()); !errors.Is(err, ErrCaptchaFailed) {
		t.Fatalf("expected captcha failure, got %v", err)
	}
	if len(store.inquiries) != 0 {
		t.Fatal("rejected submission must not persist")
	}

	// Provider outage lets the submission through.
	svc.verifier = fakeVerifier{err: errors.New("timeout")}
	resp, err := svc.CreateLead(context.Background(), validLeadRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("provider outage must not block leads, got %+v", resp)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	store := newFakeInquiryStore()
	audit := &fakeAudit{}
	svc := newTestInquiryService(store, audit)
	ctx := context.Background()

	store.Create(ctx, &models.Inquiry{Name: "A", Phone: "9876543210", Status: models.StatusPending})

	if err := svc.SetStatus(ctx, 1, models.StatusBooked, "ops@example.com"); err != nil {
		t.Fatalf("forward move failed: %v", err)
	}
	if err := svc.SetStatus(ctx, 1, models.StatusPending, "ops@example.com"); err != nil {
		t.Fatalf("backward move failed: %v", err)
	}
	if err := svc.SetStatus(ctx, 1, "SHIPPED", "ops@example.com"); !IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if err := svc.SetStatus(ctx, 99, models.StatusClosed, "ops@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if len(audit.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(audit.entries))
	}
	if audit.entries[0].Detail != "PENDING -> BOOKED" {
		t.Fatalf("unexpected audit detail %q", audit.entries[0].Detail)
	}
}

func TestTrashLifecycle(t *testing.T) {
	store := newFakeInquiryStore()
	svc := newTestInquiryService(store, &fakeAudit{})
	ctx := context.Background()

	store.Create(ctx, &models.Inquiry{Name: "A", Phone: "9876543210", Status: models.StatusContacted})

	// Permanent delete of a live lead is refused.
	if err := svc.DeleteForever(ctx, 1, "ops"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("live lead must not be purged, got %v", err)
	}

	if err := svc.MoveToTrash(ctx, 1, "ops"); err != nil {
		t.Fatalf("trash failed: %v", err)
	}
	if !store.inquiries[1].IsDeleted {
		t.Fatal("lead should be trashed")
	}
	if store.inquiries[1].Status != models.StatusContacted {
		t.Fatal("trashing must not change pipeline status")
	}
	if store.inquiries[1].DeletedAt == nil {
		t.Fatal("trashed lead must carry a deletion timestamp")
	}
	firstDeletedAt := *store.inquiries[1].DeletedAt

	// Double-trash is not found.
	if err := svc.MoveToTrash(ctx, 1, "ops"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on double trash, got %v", err)
	}

	if err := svc.RestoreFromTrash(ctx, 1, "ops"); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if store.inquiries[1].IsDeleted {
		t.Fatal("lead should be restored")
	}
	if store.inquiries[1].DeletedAt != nil {
		t.Fatal("restored lead must not keep a deletion timestamp")
	}

	if err := svc.MoveToTrash(ctx, 1, "ops"); err != nil {
		t.Fatalf("re-trash failed: %v", err)
	}
	second := store.inquiries[1].DeletedAt
	if second == nil || !second.After(firstDeletedAt) {
		t.Fatalf("re-trash must stamp a fresh deletion time: first %v, second %v", firstDeletedAt, second)
	}
	if err := svc.DeleteForever(ctx, 1, "ops"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if _, ok := store.inquiries[1]; ok {
		t.Fatal("purged lead should be gone")
	}
}
