// Package ingest loads ingredient reference data from tabular sources.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

var ErrBadRow = errors.New("expected two columns: name, measurement unit")

// Ingredients reads (name, measurement_unit) rows from r and upserts each
// into the store. Re-running the load over the same file is a no-op.
// Returns the number of rows processed.
func Ingredients(ctx context.Context, store database.Querier, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	count := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("reading row %d: %w", count+1, err)
		}
		if len(record) != 2 {
			return count, fmt.Errorf("row %d: %w", count+1, ErrBadRow)
		}

		_, err = store.CreateIngredient(ctx, database.CreateIngredientParams{
			Name:            record[0],
			MeasurementUnit: record[1],
		})
		if err != nil {
			return count, fmt.Errorf("storing %q: %w", record[0], err)
		}
		count++
	}
}
