package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTemp(t)

	first := Entry{
		At:          time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		WindowTitle: "main.go — Visual Studio Code",
		ControlText: "Accept all",
		ControlType: "Button",
		Target:      "accept all",
		Tier:        "invoke",
		Rect:        "640,480 80x30",
	}
	require.NoError(t, j.Record(first))
	require.NoError(t, j.Record(Entry{ControlText: "Run", Target: "run", Tier: "screen_click"}))

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "Run", entries[0].ControlText)
	assert.Equal(t, first.ControlText, entries[1].ControlText)
	assert.Equal(t, first.Tier, entries[1].Tier)
	assert.True(t, first.At.Equal(entries[1].At))
	assert.False(t, entries[0].At.IsZero(), "zero At should be stamped at record time")
}

func TestRecent_Limit(t *testing.T) {
	j := openTemp(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(Entry{ControlText: "Run"}))
	}
	entries, err := j.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecent_Empty(t *testing.T) {
	j := openTemp(t)
	entries, err := j.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
