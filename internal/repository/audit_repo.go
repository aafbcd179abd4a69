package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bus-booking-api/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Log(ctx context.Context, entry model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries
		 (action, occurred_at, actor_user_id, actor_username, actor_role, actor_ip,
		  status, resource, error_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.Action, entry.OccurredAt,
		entry.Actor.UserID, entry.Actor.Username, entry.Actor.Role, entry.Actor.IP,
		entry.Status, entry.Resource, entry.Error)
	if err != nil {
		return fmt.Errorf("log audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx,
		`SELECT action, occurred_at, actor_user_id, actor_username, actor_role, actor_ip,
		        status, resource, error_text
		 FROM audit_entries
		 ORDER BY occurred_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.Action, &e.OccurredAt,
			&e.Actor.UserID, &e.Actor.Username, &e.Actor.Role, &e.Actor.IP,
			&e.Status, &e.Resource, &e.Error); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
