package importing

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/portfolio-import/internal/domain"
)

// Store is the capability the pipeline needs from a backing store.
// Implemented by the Supabase client and by the local sqlite store.
type Store interface {
	// FindStock returns the id of an existing stock, found=false when the
	// (ticker, exchange) pair is not present.
	FindStock(ticker, exchange string) (id int64, found bool, err error)
	// InsertStock writes a new stock and returns the store-assigned id.
	InsertStock(stock domain.StockRecord) (int64, error)
	// InsertTrade writes one trade row.
	InsertTrade(trade domain.TradeRecord) error
}

// StockResolver maps (ticker, exchange) pairs to store ids, querying the
// store at most once per unique pair per run. The mapping is scoped to one
// run; there is no invalidation.
type StockResolver struct {
	store   Store
	cache   map[StockKey]int64
	created int
	log     zerolog.Logger
}

// NewStockResolver creates a new stock resolver
func NewStockResolver(store Store, log zerolog.Logger) *StockResolver {
	return &StockResolver{
		store: store,
		cache: make(map[StockKey]int64),
		log:   log.With().Str("component", "stock_resolver").Logger(),
	}
}

// Resolve returns the store id for a stock, inserting it when the store
// does not know the (ticker, exchange) pair yet. First-seen name, currency
// and sector win: later rows with the same key hit the cache untouched.
func (r *StockResolver) Resolve(stock NormalizedStock) (int64, error) {
	key := StockKey{Ticker: stock.Ticker, Exchange: stock.Exchange}
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	id, found, err := r.store.FindStock(stock.Ticker, stock.Exchange)
	if err != nil {
		return 0, fmt.Errorf("failed to look up stock %s.%s: %w", stock.Ticker, stock.Exchange, err)
	}

	if !found {
		id, err = r.store.InsertStock(domain.StockRecord{
			Ticker:   stock.Ticker,
			Exchange: stock.Exchange,
			Name:     stock.Name,
			Currency: stock.Currency,
			Sector:   stock.Sector,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert stock %s.%s: %w", stock.Ticker, stock.Exchange, err)
		}
		r.created++
		r.log.Info().
			Str("ticker", stock.Ticker).
			Str("exchange", stock.Exchange).
			Int64("id", id).
			Msg("Stock created")
	}

	r.cache[key] = id
	return id, nil
}

// Lookup returns the cached id for a key without touching the store.
func (r *StockResolver) Lookup(ticker, exchange string) (int64, bool) {
	id, ok := r.cache[StockKey{Ticker: ticker, Exchange: exchange}]
	return id, ok
}

// Resolved returns the number of unique stocks in the mapping.
func (r *StockResolver) Resolved() int {
	return len(r.cache)
}

// Created returns the number of stocks inserted during this run.
func (r *StockResolver) Created() int {
	return r.created
}
