package service

import (
	"context"
	"encoding/json"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type securityEventService struct {
	repo ports.SecurityEventRepository
	log  zerolog.Logger
}

// NewSecurityEventService creates a new security event service.
// If repo is nil, events are only written to the logger.
func NewSecurityEventService(repo ports.SecurityEventRepository, log zerolog.Logger) ports.SecurityEventService {
	return &securityEventService{repo: repo, log: log}
}

// Record persists a security event asynchronously (fire-and-forget). The
// calling request never waits on, or fails because of, event persistence.
func (s *securityEventService) Record(ctx context.Context, kind domain.SecurityEventKind, detail map[string]any, clientIP string) {
	detailJSON, _ := json.Marshal(detail)

	event := &domain.SecurityEvent{
		ID:        uuid.New(),
		Kind:      kind,
		Detail:    string(detailJSON),
		ClientIP:  clientIP,
		CreatedAt: time.Now().UTC(),
	}

	go func() {
		s.log.Warn().
			Str("kind", string(kind)).
			Str("client_ip", clientIP).
			RawJSON("detail", detailJSON).
			Msg("security event")

		if s.repo != nil {
			if err := s.repo.Create(context.Background(), event); err != nil {
				s.log.Warn().Err(err).Str("kind", string(kind)).Msg("failed to persist security event")
			}
		}
	}()
}
