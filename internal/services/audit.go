package services

import (
	"context"
	"log"

	"travel-backend/internal/models"
)

// recordAudit appends one operator action to the audit trail. A failed write
// is logged and swallowed: the mutation it describes already committed.
func recordAudit(ctx context.Context, audit AuditWriter, actor, action, entityType string, entityID int, detail string) {
	if audit == nil {
		return
	}
	entry := &models.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := audit.Create(ctx, entry); err != nil {
		log.Printf("[Audit] Failed to record %s on %s %d: %v", action, entityType, entityID, err)
	}
}

// AuditService exposes the trail to the console.
type AuditService struct {
	Repo AuditReader
}

// AuditReader is the read side of the audit trail.
type AuditReader interface {
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
	ListByEntity(ctx context.Context, entityType string, entityID int) ([]models.AuditLog, error)
}

func NewAuditService(repo AuditReader) *AuditService {
	return &AuditService{Repo: repo}
}

func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *AuditService) ListByEntity(ctx context.Context, entityType string, entityID int) ([]models.AuditLog, error) {
	return s.Repo.ListByEntity(ctx, entityType, entityID)
}
