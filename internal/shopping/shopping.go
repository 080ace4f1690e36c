// Package shopping aggregates the ingredient amounts of every recipe in a
// user's cart into a downloadable shopping list.
package shopping

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

const reportHeader = "Список покупок:"

// Line is one aggregated shopping list entry: the summed amount of an
// ingredient across all carted recipes, keyed by (name, unit).
type Line struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

type Aggregator struct {
	store database.Querier
}

func NewAggregator(store database.Querier) *Aggregator {
	return &Aggregator{store: store}
}

// Aggregate sums the user's carted ingredient amounts grouped by
// (name, measurement unit), first occurrence first. An empty cart yields
// an empty slice.
func (a *Aggregator) Aggregate(ctx context.Context, userID int64) ([]Line, error) {
	rows, err := a.store.ListCartIngredients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cart ingredients: %w", err)
	}
	return sumByIngredient(rows), nil
}

func sumByIngredient(rows []database.CartIngredientRow) []Line {
	type key struct{ name, unit string }

	lines := make([]Line, 0, len(rows))
	index := make(map[key]int, len(rows))
	for _, row := range rows {
		k := key{name: row.Name, unit: row.MeasurementUnit}
		if i, ok := index[k]; ok {
			lines[i].Amount += int64(row.Amount)
			continue
		}
		index[k] = len(lines)
		lines = append(lines, Line{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          int64(row.Amount),
		})
	}
	return lines
}

// Render formats the aggregated lines as the plain-text report: a header
// line followed by one "<Name> <amount> <unit>," line per ingredient.
func Render(lines []Line) string {
	var b strings.Builder
	b.WriteString(reportHeader + "\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "%s %d %s,\n", capitalize(line.Name), line.Amount, line.MeasurementUnit)
	}
	return b.String()
}

// capitalize uppercases the first rune and lowercases the rest, matching
// the report's historical formatting.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
