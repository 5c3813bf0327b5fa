package sessionlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordJoinAndRecent(t *testing.T) {
	l := openTestLog(t)

	require.NoError(t, l.RecordJoin("room-1", "peer-a", "callee"))
	require.NoError(t, l.RecordJoin("room-1", "peer-b", "caller"))

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// most recent join first
	assert.Equal(t, "peer-b", entries[0].PeerID)
	assert.Equal(t, "caller", entries[0].Role)
	assert.Nil(t, entries[0].LeftUnix)
}

func TestRecordLeaveClosesEntry(t *testing.T) {
	l := openTestLog(t)

	require.NoError(t, l.RecordJoin("room-1", "peer-a", "callee"))
	require.NoError(t, l.RecordLeave("room-1", "peer-a"))

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].LeftUnix)
	assert.GreaterOrEqual(t, *entries[0].LeftUnix, entries[0].JoinedUnix)
}

func TestRecentHonorsLimit(t *testing.T) {
	l := openTestLog(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, l.RecordJoin("room-1", "peer", "callee"))
	}
	entries, err := l.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
