package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampName(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 42, 0, time.Local)
	require.Equal(t, "INVENTORY_20240315_090542.txt", TimestampName("INVENTORY", now))
}

func TestWriteFileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	r := NewRenderer("AGIB", dir)

	path, err := r.WriteFile("test.txt", "hello\n")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "test.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(content))
}
