package postgres

import (
	"context"
	"fmt"

	"bet-settlement/internal/core/domain"
)

// SecurityEventRepo implements ports.SecurityEventRepository.
type SecurityEventRepo struct {
	pool Pool
}

// NewSecurityEventRepo creates a new SecurityEventRepo.
func NewSecurityEventRepo(pool Pool) *SecurityEventRepo {
	return &SecurityEventRepo{pool: pool}
}

// Create inserts a security event.
func (r *SecurityEventRepo) Create(ctx context.Context, event *domain.SecurityEvent) error {
	query := `INSERT INTO security_events (id, kind, detail, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, event.ID, event.Kind, event.Detail, event.ClientIP, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}
