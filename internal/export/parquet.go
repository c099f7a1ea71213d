// Package export writes flattened usage rows as Parquet for downstream
// analytics tooling.
package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/openlibstats/miso/internal/model"
)

// WriteParquet writes the rows to path, replacing any existing file.
func WriteParquet(path string, rows []model.UsageRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[model.UsageRow](f)
	if _, err := w.Write(rows); err != nil {
		w.Close()
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
