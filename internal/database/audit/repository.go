package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/schoolapp/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an auth event.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuthEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEventsByEmail returns events for an email, most recent first.
func (r *Repository) GetEventsByEmail(ctx context.Context, email string, limit int) ([]entities.AuthEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []entities.AuthEvent
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// DeleteOldEvents removes events older than the given time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuthEvent{})
	return result.RowsAffected, result.Error
}
