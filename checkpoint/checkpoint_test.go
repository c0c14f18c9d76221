package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tz := time.FixedZone("SAST", 2*60*60)
	tests := map[string]time.Time{
		"1970-01-01T00:00:00.000Z": Epoch,
		"2024-03-01T10:34:56.789Z": time.Date(2024, time.March, 1, 12, 34, 56, 789_000_000, tz),
		"2024-03-01T12:34:56.000Z": time.Date(2024, time.March, 1, 12, 34, 56, 0, time.UTC),
	}

	for expected, v := range tests {
		assert.Equal(t, expected, Format(v))
	}
}

func TestParse(t *testing.T) {
	tests := map[string]time.Time{
		"1970-01-01T00:00:00.000Z":       Epoch,
		"2024-03-01T12:34:56.789Z\n":     time.Date(2024, time.March, 1, 12, 34, 56, 789_000_000, time.UTC),
		"2024-03-01T12:34:56Z":           time.Date(2024, time.March, 1, 12, 34, 56, 0, time.UTC),
		"2024-03-01T14:34:56.5+02:00":    time.Date(2024, time.March, 1, 12, 34, 56, 500_000_000, time.UTC),
		" 2024-03-01T12:34:56.123456Z  ": time.Date(2024, time.March, 1, 12, 34, 56, 123_456_000, time.UTC),
	}

	for s, expected := range tests {
		v, err := Parse(s)
		require.NoError(t, err, "checkpoint %q", s)
		assert.True(t, expected.Equal(v), "checkpoint %q: expected %v, got %v", s, expected, v)
		assert.Equal(t, time.UTC, v.Location())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "   ", "yesterday", "2024-03-01"} {
		v, err := Parse(s)
		assert.Error(t, err, "checkpoint %q", s)
		assert.Equal(t, Epoch, v)
	}
}

func TestFileLoadNotFound(t *testing.T) {
	store := NewFile(afero.NewMemMapFs(), "/var/tkd/last_checked.txt")

	v, err := store.Load(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Epoch, v)
}

func TestFileSaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFile(fs, "/var/tkd/last_checked.txt")
	checkpoint := time.Date(2024, time.March, 1, 12, 34, 56, 789_000_000, time.UTC)

	require.NoError(t, store.Save(context.Background(), checkpoint))

	b, err := afero.ReadFile(fs, "/var/tkd/last_checked.txt")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:34:56.789Z", string(b))

	v, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, checkpoint.Equal(v))

	files, err := afero.ReadDir(fs, "/var/tkd")
	require.NoError(t, err)
	assert.Len(t, files, 1, "temporary checkpoint file not removed")
}

func TestFileSaveOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFile(fs, "/var/tkd/last_checked.txt")

	require.NoError(t, afero.WriteFile(fs, "/var/tkd/last_checked.txt", []byte("2023-12-31T23:59:59.999Z"), 0660))
	require.NoError(t, store.Save(context.Background(), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))

	b, err := afero.ReadFile(fs, "/var/tkd/last_checked.txt")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", string(b))
}

func TestFileSaveKeepsCheckpointAcrossSaves(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFile(fs, "/cp/last_checked.txt")
	first := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)

	for _, checkpoint := range []time.Time{first, second} {
		require.NoError(t, store.Save(context.Background(), checkpoint))

		exists, err := afero.Exists(fs, "/cp/last_checked.txt")
		require.NoError(t, err)
		require.True(t, exists, "checkpoint file missing after save")

		v, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.True(t, checkpoint.Equal(v), "expected %v, got %v", checkpoint, v)
	}

	files, err := afero.ReadDir(fs, "/cp")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileLoadCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFile(fs, "/var/tkd/last_checked.txt")

	require.NoError(t, afero.WriteFile(fs, "/var/tkd/last_checked.txt", []byte("garbage"), 0660))

	v, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Epoch, v)
}
