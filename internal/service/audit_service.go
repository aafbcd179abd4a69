package service

import (
	"context"
	"log/slog"
	"time"

	"bus-booking-api/internal/model"
)

type AuditStore interface {
	Log(ctx context.Context, entry model.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

// Record is best-effort: an audit failure is logged but never fails
// the request that triggered it.
func (s *AuditService) Record(ctx context.Context, entry model.AuditEntry) {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	if entry.Status == "" {
		entry.Status = "ok"
	}

	if err := s.store.Log(ctx, entry); err != nil {
		slog.Error("failed to record audit entry", "action", entry.Action, "error", err)
	}
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	return s.store.ListRecent(ctx, limit)
}
