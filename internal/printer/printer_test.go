package printer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintWritesReceiptFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	p, err := NewFilePrinter(dir)
	require.NoError(t, err)

	require.NoError(t, p.Print(context.Background(), "RECEIPT BODY"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "RECEIPT BODY", string(data))
}

func TestNewFilePrinterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "spool")
	_, err := NewFilePrinter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
