package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventMirrorWriteAndReread(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gesture.dat")
	m, err := NewEventMirror(path, 256)
	require.NoError(t, err)

	require.NoError(t, m.WriteJSON(map[string]string{"text": "👍 Thumbs Up"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	end := bytes.IndexByte(raw, 0)
	require.Greater(t, end, 0)
	assert.JSONEq(t, `{"text":"👍 Thumbs Up"}`, string(raw[:end]))

	require.NoError(t, m.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "mirror file removed on close")
}

func TestEventMirrorRejectsOversizedPayload(t *testing.T) {
	m, err := NewEventMirror(filepath.Join(t.TempDir(), "gesture.dat"), 8)
	require.NoError(t, err)
	defer m.Close()

	assert.Error(t, m.WriteJSON(map[string]string{"text": "far too large for the mapping"}))
}
