package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logx "homeworkbot/pkg/logx"
)

func openBoth(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	out := map[string]Store{}
	for _, driver := range []string{"file", "sqlite"} {
		st, err := Open(Config{Driver: driver, Path: filepath.Join(dir, driver, "bot.db"), BusyTimeout: time.Second}, logx.Nop())
		require.NoError(t, err, driver)
		require.NotNil(t, st, driver)
		t.Cleanup(func() { _ = st.Close() })
		out[driver] = st
	}
	return out
}

func TestOpenDisabled(t *testing.T) {
	for _, driver := range []string{"", "none", " NONE "} {
		st, err := Open(Config{Driver: driver}, logx.Nop())
		require.NoError(t, err)
		assert.Nil(t, st)
	}
	_, err := Open(Config{Driver: "redis"}, logx.Nop())
	require.Error(t, err)
	_, err = Open(Config{Driver: "file"}, logx.Nop())
	require.Error(t, err)
}

func TestStoreAppendAndRecent(t *testing.T) {
	ctx := context.Background()
	for driver, st := range openBoth(t) {
		st := st
		t.Run(driver, func(t *testing.T) {
			base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
			for i := 0; i < 5; i++ {
				require.NoError(t, st.AppendNotification(ctx, Record{
					At:       base.Add(time.Duration(i) * time.Minute),
					Kind:     KindStatus,
					ChatID:   42,
					Homework: "hw1",
					Status:   "reviewing",
					Text:     fmt.Sprintf("msg %d", i),
					OK:       i%2 == 0,
				}))
			}
			require.NoError(t, st.AppendNotification(ctx, Record{
				At: base.Add(time.Hour), Kind: KindDiagnostic, ChatID: 42,
				Text: "failure", Error: "connection refused",
			}))

			got, err := st.RecentNotifications(ctx, 3)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, KindDiagnostic, got[0].Kind)
			assert.Equal(t, "connection refused", got[0].Error)
			assert.False(t, got[0].OK)
			assert.Equal(t, "msg 4", got[1].Text)
			assert.True(t, got[1].OK)
			assert.Equal(t, "hw1", got[1].Homework)
			assert.Equal(t, "msg 3", got[2].Text)
			assert.True(t, got[1].At.Equal(base.Add(4*time.Minute)))

			none, err := st.RecentNotifications(ctx, 0)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.db")
	for i := 0; i < 2; i++ {
		st, err := Open(Config{Driver: "sqlite", Path: path}, logx.Nop())
		require.NoError(t, err)
		require.NoError(t, st.AppendNotification(context.Background(), Record{Kind: KindStatus, Text: "x"}))
		require.NoError(t, st.Close())
	}
	st, err := Open(Config{Driver: "sqlite", Path: path}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()
	got, err := st.RecentNotifications(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFileStoreSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(Config{Driver: "file", Path: filepath.Join(dir, "bot.json")}, logx.Nop())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.AppendNotification(context.Background(), Record{Kind: KindStatus, Text: "a"}))
	f, err := os.OpenFile(filepath.Join(dir, "bot.notifications.jsonl"), os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, _ = f.WriteString("{not json\n")
	require.NoError(t, f.Close())
	require.NoError(t, st.AppendNotification(context.Background(), Record{Kind: KindStatus, Text: "b"}))

	got, err := st.RecentNotifications(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Text)
	assert.Equal(t, "a", got[1].Text)
}
