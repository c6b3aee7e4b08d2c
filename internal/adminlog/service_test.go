package adminlog

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/junavolabs/junavo-backend/pkg/logger"
)

func newTestService(t *testing.T, withTable bool) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	if withTable {
		adminLogs := `
CREATE TABLE IF NOT EXISTS admin_logs (
  id TEXT PRIMARY KEY,
  admin_id TEXT NOT NULL,
  action TEXT NOT NULL,
  entity_type TEXT,
  entity_id TEXT,
  details TEXT,
  ip_address TEXT,
  created_at DATETIME
);`
		require.NoError(t, conn.Exec(adminLogs).Error)
		require.NoError(t, conn.Exec("DELETE FROM admin_logs").Error)
	} else {
		require.NoError(t, conn.Exec("DROP TABLE IF EXISTS admin_logs").Error)
	}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{Repo: NewRepository(conn), Logger: logg})
	require.NoError(t, err)
	return svc
}

func TestRecordPersistsEntry(t *testing.T) {
	svc := newTestService(t, true)
	ctx := context.Background()

	adminID := uuid.New()
	svc.Record(ctx, Entry{
		AdminID: adminID,
		Action:  "product.update",
		Details: map[string]string{"field": "price"},
	})

	entries, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, adminID, entries[0].AdminID)
	require.Equal(t, "product.update", entries[0].Action)
	require.JSONEq(t, `{"field":"price"}`, string(entries[0].Details))
}

func TestRecordDropsIncompleteEntries(t *testing.T) {
	svc := newTestService(t, true)
	ctx := context.Background()

	svc.Record(ctx, Entry{Action: "product.update"})
	svc.Record(ctx, Entry{AdminID: uuid.New(), Action: "   "})

	entries, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRecordSwallowsWriteFailures(t *testing.T) {
	svc := newTestService(t, false)

	// Missing table makes the insert fail; Record must not panic or error.
	svc.Record(context.Background(), Entry{AdminID: uuid.New(), Action: "order.status"})
}
