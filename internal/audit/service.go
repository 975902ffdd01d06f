// Package audit records register and login attempts.
package audit

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/schoolapp/internal/auth"
	"github.com/mrlokans/schoolapp/internal/database/audit"
	"github.com/mrlokans/schoolapp/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuthEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an event in the background. Failures are only logged.
func (s *Service) LogAsync(event *entities.AuthEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Error().Err(err).Str("action", string(event.Action)).Msg("failed to log auth event")
		}
	}()
}

// Wait blocks until every event passed to LogAsync has been written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogAuth records a register or login attempt. err is the gateway error, nil
// on success.
func (s *Service) LogAuth(action entities.AuthAction, userID, email, ipAddr, userAgent string, err error) {
	event := &entities.AuthEvent{
		UserID:    userID,
		Email:     truncate(auth.NormalizeEmail(email), 320),
		Action:    action,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.Reason = truncate(err.Error(), 200)
	}

	s.LogAsync(event)
}

// GetEvents returns the most recent events for an email.
func (s *Service) GetEvents(ctx context.Context, email string, limit int) ([]entities.AuthEvent, error) {
	return s.repo.GetEventsByEmail(ctx, auth.NormalizeEmail(email), limit)
}

// DeleteOldEvents removes events older than the retention period.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
