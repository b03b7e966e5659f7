// Package csvutil writes the CSV artifacts the pipeline produces.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// utf8BOM makes the files open cleanly in spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteFile writes header plus rows to path, creating parent directories as
// needed. The file starts with a UTF-8 BOM.
func WriteFile(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
