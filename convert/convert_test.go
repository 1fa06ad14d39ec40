package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	var dir = t.TempDir()
	var target = filepath.Join(dir, "out.sns")

	require.NoError(t, writeAtomic(target, []byte("payload")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	// No staging files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.sns", entries[0].Name())
}

func TestWriteAtomicReplacesExisting(t *testing.T) {
	var dir = t.TempDir()
	var target = filepath.Join(dir, "out.sns")

	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))
	require.NoError(t, writeAtomic(target, []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestConvertFileMissingInput(t *testing.T) {
	var dir = t.TempDir()

	var err = ConvertFile(filepath.Join(dir, "missing.wav"), filepath.Join(dir, "out.sns"), &Options{})
	require.Error(t, err)

	var typed *Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, IO, typed.Kind)
}
