package repositories

import (
	"context"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriberRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriberRepository(db *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{DB: db}
}

// Create upserts by email; re-subscribing a lapsed address reactivates it.
func (r *SubscriberRepository) Create(ctx context.Context, s *models.Subscriber) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO subscribers(email, is_active)
		 VALUES($1, TRUE)
		 ON CONFLICT (email) DO UPDATE SET is_active = TRUE
		 RETURNING id, is_active, subscribed_at`,
		s.Email,
	).Scan(&s.ID, &s.IsActive, &s.SubscribedAt)
}

func (r *SubscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE subscribers SET is_active=FALSE WHERE email=$1`, email)
	return err
}

func (r *SubscriberRepository) List(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, email, is_active, subscribed_at FROM subscribers ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *SubscriberRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscribers WHERE is_active=TRUE`).Scan(&count)
	return count, err
}
