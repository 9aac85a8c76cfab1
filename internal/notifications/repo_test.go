package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  content TEXT NOT NULL,
  is_read INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	t.Cleanup(func() {
		require.NoError(t, db.Exec(`DELETE FROM notifications`).Error)
	})
	return db
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, content string, read bool, created time.Time) *models.Notification {
	t.Helper()
	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		IsRead:    read,
		CreatedAt: created,
	}
	require.NoError(t, db.Create(notification).Error)
	return notification
}

func TestCreateAndListByUser(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	older := seedNotification(t, db, userID, "older", false, now.Add(-time.Hour))
	newer := seedNotification(t, db, userID, "newer", false, now)
	seedNotification(t, db, uuid.New(), "other user", false, now)

	rows, err := repo.ListByUser(ctx, userID, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
}

func TestMarkReadScopedToOwnerRow(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	notification := seedNotification(t, db, userID, "hello", false, time.Now())

	updated, err := repo.MarkRead(ctx, uuid.New(), notification.ID)
	require.NoError(t, err)
	assert.False(t, updated)

	updated, err = repo.MarkRead(ctx, userID, notification.ID)
	require.NoError(t, err)
	assert.True(t, updated)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestDeleteReadOlderThan(t *testing.T) {
	db := setupNotificationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	seedNotification(t, db, userID, "old read", true, now.Add(-48*time.Hour))
	oldUnread := seedNotification(t, db, userID, "old unread", false, now.Add(-48*time.Hour))
	freshRead := seedNotification(t, db, userID, "fresh read", true, now)

	removed, err := repo.DeleteReadOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	ids := []uuid.UUID{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, oldUnread.ID)
	assert.Contains(t, ids, freshRead.ID)
}
