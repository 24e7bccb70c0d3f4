// Package importer loads the legacy beers SQL dump into the catalog.
// It is a one-shot, offline tool: per-row failures are counted and
// skipped, only an unreadable dump aborts the run.
package importer

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/pkg/model"
)

type BeerStore interface {
	ImportBeer(ctx context.Context, beer model.Beer) (bool, error)
}

type Importer struct {
	store  BeerStore
	logger *zap.Logger
}

func New(store BeerStore, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

type Summary struct {
	Total    int
	Imported int
	Skipped  int
	Failed   int

	// RowErrors aggregates every per-row failure for end-of-run
	// reporting; it never aborts the run.
	RowErrors error
}

// Run imports every beers insert statement found in the dump file.
// Returns an error only when the file itself cannot be read.
func (imp *Importer) Run(ctx context.Context, path string) (*Summary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}

	return imp.importDump(ctx, string(content)), nil
}

func (imp *Importer) importDump(ctx context.Context, dump string) *Summary {
	summary := &Summary{}

	for _, statement := range extractStatements(dump) {
		for _, tuple := range splitTuples(statement) {
			summary.Total++

			beer, err := beerFromTuple(tuple)
			if err != nil {
				imp.recordFailure(summary, err)

				continue
			}

			inserted, err := imp.store.ImportBeer(ctx, beer)
			if err != nil {
				imp.recordFailure(summary, err)

				continue
			}

			if inserted {
				summary.Imported++
			} else {
				summary.Skipped++
			}
		}
	}

	return summary
}

func (imp *Importer) recordFailure(summary *Summary, err error) {
	summary.Failed++
	summary.RowErrors = multierr.Append(summary.RowErrors, fmt.Errorf("row %d: %w", summary.Total, err))
	imp.logger.Warn("skipping row", zap.Int("row", summary.Total), zap.Error(err))
}

// Legacy dump column order. The leading auto-increment id is discarded;
// brewery_id, cat_id, upc, add_user and last_mod have no column in the
// current schema.
const (
	colName        = 2
	colStyleID     = 4
	colABV         = 5
	colIBU         = 6
	colSRM         = 7
	colFilepath    = 9
	colDescription = 10

	legacyColumnCount = 13
)

func beerFromTuple(tuple string) (model.Beer, error) {
	fields, err := parseFields(tuple)
	if err != nil {
		return model.Beer{}, err
	}

	if len(fields) != legacyColumnCount {
		return model.Beer{}, fmt.Errorf("expected %d fields, got %d", legacyColumnCount, len(fields))
	}

	name, ok := fields[colName].(string)
	if !ok || name == "" {
		return model.Beer{}, fmt.Errorf("name must be a non-empty string, got %v", fields[colName])
	}

	beer := model.Beer{
		Name:    name,
		ABV:     floatField(fields[colABV]),
		IBU:     floatField(fields[colIBU]),
		SRM:     floatField(fields[colSRM]),
		StyleID: intField(fields[colStyleID]),
	}

	if description, ok := fields[colDescription].(string); ok && description != "" {
		beer.Description = &description
	}

	if filepath, ok := fields[colFilepath].(string); ok && filepath != "" {
		beer.Labels = &model.BeerLabels{Icon: filepath}
	}

	return beer, nil
}

func floatField(field interface{}) *float64 {
	if number, ok := field.(float64); ok {
		return &number
	}

	return nil
}

func intField(field interface{}) *int {
	if number, ok := field.(float64); ok {
		id := int(number)

		return &id
	}

	return nil
}
