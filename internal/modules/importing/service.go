package importing

import (
	"github.com/rs/zerolog"
)

// Service runs the two-pass import: stocks first so the dedup mapping is
// complete, then trades against that mapping. Both passes scan the same
// in-memory row table. Any store error aborts the run; there is no retry
// and no rollback of rows already written.
type Service struct {
	store Store
	log   zerolog.Logger
}

// NewService creates a new import service
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "importing").Logger(),
	}
}

// Run executes the import over the loaded rows and returns run totals.
func (s *Service) Run(rows []Row) (*Summary, error) {
	resolver := NewStockResolver(s.store, s.log)

	// Pass 1: build the (ticker, exchange) -> id mapping, inserting stocks
	// the store has not seen before.
	for _, row := range rows {
		stock, ok := NormalizeStock(row)
		if !ok {
			continue
		}
		if _, err := resolver.Resolve(stock); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Int("rows", len(rows)).
		Int("stocks", resolver.Resolved()).
		Int("created", resolver.Created()).
		Msg("Stock pass complete")

	// Pass 2: insert trades referencing the mapping.
	loader := NewTradeLoader(s.store, resolver, s.log)
	for _, row := range rows {
		if err := loader.Load(row); err != nil {
			return nil, err
		}
	}

	return &Summary{
		Rows:           len(rows),
		StocksResolved: resolver.Resolved(),
		StocksCreated:  resolver.Created(),
		TradesInserted: loader.Inserted(),
		RowsSkipped:    loader.Skipped(),
	}, nil
}
