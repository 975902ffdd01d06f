package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/schoolapp/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuthEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuthEvent{
		UserID: "u-1",
		Email:  "a@x.com",
		Action: entities.AuthActionLogin,
		Status: entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEventsByEmail(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuthEvent{
			Email:     "a@x.com",
			Action:    entities.AuthActionLogin,
			Status:    entities.AuditStatusFailed,
			CreatedAt: now.Add(time.Duration(-i) * time.Hour),
		}))
	}
	require.NoError(t, repo.LogEvent(ctx, &entities.AuthEvent{
		Email:  "b@x.com",
		Action: entities.AuthActionRegister,
		Status: entities.AuditStatusSuccess,
	}))

	t.Run("filters by email", func(t *testing.T) {
		events, err := repo.GetEventsByEmail(ctx, "a@x.com", 50)
		require.NoError(t, err)
		assert.Len(t, events, 15)
	})

	t.Run("most recent first with limit", func(t *testing.T) {
		events, err := repo.GetEventsByEmail(ctx, "a@x.com", 5)
		require.NoError(t, err)
		require.Len(t, events, 5)
		for i := 1; i < len(events); i++ {
			assert.True(t, events[i-1].CreatedAt.After(events[i].CreatedAt))
		}
	})

	t.Run("default limit", func(t *testing.T) {
		events, err := repo.GetEventsByEmail(ctx, "a@x.com", 0)
		require.NoError(t, err)
		assert.Len(t, events, 15)
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuthEvent{Email: "old@x.com", CreatedAt: now.Add(-100 * 24 * time.Hour)}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuthEvent{Email: "new@x.com", CreatedAt: now}))

	deleted, err := repo.DeleteOldEvents(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, err := repo.GetEventsByEmail(ctx, "new@x.com", 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
