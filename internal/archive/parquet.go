package archive

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

func writeParquet(path string, rows []snapshotRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet archive: %w", err)
	}

	w := parquet.NewGenericWriter[snapshotRow](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}
