package repositories

import (
	"context"
	"fmt"
	"time"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inquiryColumns = `id, name, phone, COALESCE(email, '') as email,
	COALESCE(destination, '') as destination, start_date, travelers,
	COALESCE(budget, '') as budget, COALESCE(message, '') as message,
	type, package_id, status, is_read, is_deleted, deleted_at, created_at`

type InquiryRepository struct {
	DB *pgxpool.Pool
}

func NewInquiryRepository(db *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{DB: db}
}

func (r *InquiryRepository) Create(ctx context.Context, q *models.Inquiry) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO inquiries(name, phone, email, destination, start_date, travelers, budget, message, type, package_id, status, is_read)
		 VALUES($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, FALSE)
		 RETURNING id, created_at`,
		q.Name, q.Phone, q.Email, q.Destination, q.StartDate, q.Travelers,
		q.Budget, q.Message, q.Type, q.PackageID, q.Status,
	).Scan(&q.ID, &q.CreatedAt)
}

func (r *InquiryRepository) Get(ctx context.Context, id int) (*models.Inquiry, error) {
	row := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM inquiries WHERE id=$1`, inquiryColumns), id)
	return scanInquiry(row)
}

// List returns inquiries for one view: the active board or the trash.
// The soft-delete filter is mandatory on every read path.
func (r *InquiryRepository) List(ctx context.Context, trashed bool) ([]*models.Inquiry, error) {
	scope := activeInquiries
	if trashed {
		scope = trashedInquiries
	}

	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM inquiries WHERE %s ORDER BY created_at DESC`, inquiryColumns, scope))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []*models.Inquiry
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, q)
	}
	return inquiries, rows.Err()
}

// FindActiveByPhoneSince returns the newest non-deleted inquiry from the given
// phone created after the cutoff, or nil when there is none. Backs the
// 15-minute duplicate-submission guard.
func (r *InquiryRepository) FindActiveByPhoneSince(ctx context.Context, phone string, cutoff time.Time) (*models.Inquiry, error) {
	row := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM inquiries
		 WHERE phone = $1 AND %s AND created_at > $2
		 ORDER BY created_at DESC LIMIT 1`, inquiryColumns, activeInquiries),
		phone, cutoff)

	q, err := scanInquiry(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// SetStatus moves a lead on the board. Viewing implies reading, so the
// is_read flag is set alongside the status.
func (r *InquiryRepository) SetStatus(ctx context.Context, id int, status models.InquiryStatus) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inquiries SET status=$1, is_read=TRUE WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *InquiryRepository) MarkRead(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `UPDATE inquiries SET is_read=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SoftDelete moves a lead to the trash. is_deleted and deleted_at move
// together; the schema enforces the same invariant with a CHECK constraint.
func (r *InquiryRepository) SoftDelete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inquiries SET is_deleted=TRUE, deleted_at=CURRENT_TIMESTAMP WHERE id=$1 AND is_deleted=FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *InquiryRepository) Restore(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inquiries SET is_deleted=FALSE, deleted_at=NULL WHERE id=$1 AND is_deleted=TRUE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// PermanentDelete removes a trashed lead for good. The is_deleted guard makes
// the trash-only rule a store invariant, not just a UI convention.
func (r *InquiryRepository) PermanentDelete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM inquiries WHERE id=$1 AND is_deleted=TRUE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountCreatedSince counts non-deleted inquiries created at or after the cutoff.
func (r *InquiryRepository) CountCreatedSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM inquiries WHERE %s AND created_at >= $1`, activeInquiries),
		cutoff).Scan(&count)
	return count, err
}

// CountActive counts all non-deleted inquiries (conversion-rate denominator).
func (r *InquiryRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM inquiries WHERE %s`, activeInquiries)).Scan(&count)
	return count, err
}

// CountByType groups non-deleted inquiries by their capture source.
func (r *InquiryRepository) CountByType(ctx context.Context) (map[models.InquiryType]int, error) {
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT type, COUNT(*) FROM inquiries WHERE %s GROUP BY type`, activeInquiries))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.InquiryType]int)
	for rows.Next() {
		var t models.InquiryType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// CountByDaySince buckets non-deleted inquiries per IST calendar day.
// Keys are the day starts in the 'Asia/Kolkata' zone.
func (r *InquiryRepository) CountByDaySince(ctx context.Context, cutoff time.Time) (map[time.Time]int, error) {
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT date_trunc('day', created_at AT TIME ZONE 'Asia/Kolkata') as day, COUNT(*)
		 FROM inquiries WHERE %s AND created_at >= $1
		 GROUP BY day`, activeInquiries),
		cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var day time.Time
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	return counts, rows.Err()
}

// RecentActive returns the newest non-deleted inquiries for the activity feed.
func (r *InquiryRepository) RecentActive(ctx context.Context, limit int) ([]models.InquirySummary, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT id, name, COALESCE(destination, '') as destination, type, status, created_at
		 FROM inquiries WHERE %s
		 ORDER BY created_at DESC LIMIT $1`, activeInquiries),
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []models.InquirySummary
	for rows.Next() {
		var s models.InquirySummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Destination, &s.Type, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		recent = append(recent, s)
	}
	return recent, rows.Err()
}

func scanInquiry(row pgx.Row) (*models.Inquiry, error) {
	var q models.Inquiry
	err := row.Scan(
		&q.ID, &q.Name, &q.Phone, &q.Email, &q.Destination, &q.StartDate,
		&q.Travelers, &q.Budget, &q.Message, &q.Type, &q.PackageID,
		&q.Status, &q.IsRead, &q.IsDeleted, &q.DeletedAt, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
