package repositories

import (
	"context"

	"travel-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, a *models.AuditLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO audit_logs(actor, action, entity_type, entity_id, detail)
		 VALUES($1, $2, $3, $4, NULLIF($5, ''))
		 RETURNING id, created_at`,
		a.Actor, a.Action, a.EntityType, a.EntityID, a.Detail,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *AuditLogRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, actor, action, entity_type, entity_id, COALESCE(detail, '') as detail, created_at
		 FROM audit_logs
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var a models.AuditLog
		if err := rows.Scan(&a.ID, &a.Actor, &a.Action, &a.EntityType, &a.EntityID, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}

// ListByEntity returns the audit trail for one record.
func (r *AuditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID int) ([]models.AuditLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, actor, action, entity_type, entity_id, COALESCE(detail, '') as detail, created_at
		 FROM audit_logs
		 WHERE entity_type=$1 AND entity_id=$2
		 ORDER BY created_at DESC, id DESC`, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var a models.AuditLog
		if err := rows.Scan(&a.ID, &a.Actor, &a.Action, &a.EntityType, &a.EntityID, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}
