package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_ArchiveAndList(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	first, err := s.Archive("lre", 2025, 6, "libro_remuneraciones_761234560_202506.csv", []byte("a"))
	require.NoError(t, err)
	second, err := s.Archive("lre", 2025, 6, "libro_remuneraciones_761234560_202506.csv", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, filepath.Join("exports", "lre", "2025", "06")))
	assert.True(t, s.Exists(first))

	files, err := s.List("lre", 2025, 6)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, files)

	data, err := s.Read(second)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	require.NoError(t, s.Delete(first))
	assert.False(t, s.Exists(first))
}

func TestLocalStorage_ListEmptyPeriod(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	files, err := s.List("lre", 2024, 1)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.GetFullPath("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = s.Read("/etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
