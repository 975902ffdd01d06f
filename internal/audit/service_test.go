package audit

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/schoolapp/internal/auth"
	auditRepo "github.com/mrlokans/schoolapp/internal/database/audit"
	"github.com/mrlokans/schoolapp/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuthEvent{})
	require.NoError(t, err)

	return NewService(auditRepo.NewRepository(db)), db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuthEvent{
		Email:  "a@x.com",
		Action: entities.AuthActionRegister,
		Status: entities.AuditStatusSuccess,
	}
	require.NoError(t, svc.Log(context.Background(), event))

	var saved entities.AuthEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, entities.AuthActionRegister, saved.Action)
}

func TestService_LogAuth(t *testing.T) {
	svc, _ := setupTestService(t)

	t.Run("successful login", func(t *testing.T) {
		svc.LogAuth(entities.AuthActionLogin, "u-1", " A@X.com", "10.0.0.1", "curl/8.0", nil)
		svc.Wait()

		events, err := svc.GetEvents(context.Background(), "a@x.com", 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "u-1", events[0].UserID)
		assert.Equal(t, "a@x.com", events[0].Email)
		assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
		assert.Equal(t, "10.0.0.1", events[0].IPAddress)
		assert.Empty(t, events[0].Reason)
	})

	t.Run("failed login", func(t *testing.T) {
		svc.LogAuth(entities.AuthActionLogin, "", "ghost@x.com", "10.0.0.1", strings.Repeat("x", 600), auth.ErrInvalidCredentials)
		svc.Wait()

		events, err := svc.GetEvents(context.Background(), "ghost@x.com", 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditStatusFailed, events[0].Status)
		assert.Equal(t, auth.ErrInvalidCredentials.Error(), events[0].Reason)
		assert.Len(t, events[0].UserAgent, 500)
	})
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuthEvent{Email: "a@x.com", CreatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, svc.Log(ctx, &entities.AuthEvent{Email: "a@x.com"}))

	deleted, err := svc.DeleteOldEvents(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestTruncate_MultiByte(t *testing.T) {
	got := truncate(strings.Repeat("é", 7), 10)
	assert.Equal(t, "ééé...", got)
	assert.True(t, utf8.ValidString(got))

	ua := strings.Repeat("日本", 200)
	got = truncate(ua, 500)
	assert.LessOrEqual(t, len(got), 500)
	assert.True(t, utf8.ValidString(got))
}
