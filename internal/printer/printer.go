// Package printer is the thermal-printer stand-in: rendered receipts are
// spooled to disk where the platform print agent picks them up.
package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type FilePrinter struct {
	dir string
}

func NewFilePrinter(dir string) (*FilePrinter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	return &FilePrinter{dir: dir}, nil
}

func (p *FilePrinter) Print(_ context.Context, receipt string) error {
	name := fmt.Sprintf("receipt-%d.txt", time.Now().UnixNano())
	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, []byte(receipt), 0o644); err != nil {
		return fmt.Errorf("spool receipt: %w", err)
	}
	return nil
}
