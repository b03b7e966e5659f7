package csvutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	err := WriteFile(path, []string{"a", "b"}, [][]string{
		{"1", "x"},
		{"2", "y,z"},
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// BOM first, then the CSV payload with the comma-bearing field quoted.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
	assert.Equal(t, "a,b\n1,x\n2,\"y,z\"\n", string(raw[3:]))
}

func TestWriteFileEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteFile(path, []string{"a"}, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(raw[3:]))
}
