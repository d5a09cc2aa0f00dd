package importing

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/portfolio-import/internal/domain"
)

// fakeStore records every call so tests can assert on remote traffic.
type fakeStore struct {
	stocks     map[StockKey]int64
	nextID     int64
	finds      int
	inserted   []domain.StockRecord
	trades     []domain.TradeRecord
	failFind   bool
	failInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stocks: make(map[StockKey]int64),
		nextID: 1,
	}
}

func (f *fakeStore) FindStock(ticker, exchange string) (int64, bool, error) {
	if f.failFind {
		return 0, false, fmt.Errorf("fake find error")
	}
	f.finds++
	id, ok := f.stocks[StockKey{Ticker: ticker, Exchange: exchange}]
	return id, ok, nil
}

func (f *fakeStore) InsertStock(stock domain.StockRecord) (int64, error) {
	if f.failInsert {
		return 0, fmt.Errorf("fake insert error")
	}
	id := f.nextID
	f.nextID++
	f.stocks[StockKey{Ticker: stock.Ticker, Exchange: stock.Exchange}] = id
	f.inserted = append(f.inserted, stock)
	return id, nil
}

func (f *fakeStore) InsertTrade(trade domain.TradeRecord) error {
	if f.failInsert {
		return fmt.Errorf("fake insert error")
	}
	f.trades = append(f.trades, trade)
	return nil
}

func TestStockResolver_InsertsOnceForSharedKey(t *testing.T) {
	store := newFakeStore()
	resolver := NewStockResolver(store, zerolog.Nop())

	usd := "USD"
	first := NormalizedStock{Ticker: "OGZD", Exchange: "LSE", Name: "Gazprom", Currency: &usd}
	second := NormalizedStock{Ticker: "OGZD", Exchange: "LSE", Name: "Gazprom ADR"}

	id1, err := resolver.Resolve(first)
	require.NoError(t, err)
	id2, err := resolver.Resolve(second)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, store.inserted, 1)
	assert.Equal(t, 1, store.finds)

	// First-seen attributes win.
	assert.Equal(t, "Gazprom", store.inserted[0].Name)
	assert.Equal(t, "USD", *store.inserted[0].Currency)
}

func TestStockResolver_AdoptsExistingID(t *testing.T) {
	store := newFakeStore()
	store.stocks[StockKey{Ticker: "OGZD", Exchange: "LSE"}] = 42

	resolver := NewStockResolver(store, zerolog.Nop())
	id, err := resolver.Resolve(NormalizedStock{Ticker: "OGZD", Exchange: "LSE", Name: "Gazprom"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Empty(t, store.inserted)
	assert.Equal(t, 0, resolver.Created())
}

func TestStockResolver_CacheHitSkipsStore(t *testing.T) {
	store := newFakeStore()
	resolver := NewStockResolver(store, zerolog.Nop())

	stock := NormalizedStock{Ticker: "CASH", Exchange: "", Name: "Cash GBP"}
	_, err := resolver.Resolve(stock)
	require.NoError(t, err)

	// Second resolve must not touch the store at all.
	store.failFind = true
	store.failInsert = true
	id, err := resolver.Resolve(stock)
	require.NoError(t, err)

	cached, ok := resolver.Lookup("CASH", "")
	assert.True(t, ok)
	assert.Equal(t, cached, id)
	assert.Equal(t, 1, resolver.Resolved())
}

func TestStockResolver_ErrorsPropagate(t *testing.T) {
	t.Run("find error", func(t *testing.T) {
		store := newFakeStore()
		store.failFind = true

		resolver := NewStockResolver(store, zerolog.Nop())
		_, err := resolver.Resolve(NormalizedStock{Ticker: "OGZD", Exchange: "LSE", Name: "Gazprom"})
		assert.Error(t, err)
	})

	t.Run("insert error", func(t *testing.T) {
		store := newFakeStore()
		store.failInsert = true

		resolver := NewStockResolver(store, zerolog.Nop())
		_, err := resolver.Resolve(NormalizedStock{Ticker: "OGZD", Exchange: "LSE", Name: "Gazprom"})
		assert.Error(t, err)
	})
}

func TestStockResolver_DistinctExchangesAreDistinctStocks(t *testing.T) {
	store := newFakeStore()
	resolver := NewStockResolver(store, zerolog.Nop())

	id1, err := resolver.Resolve(NormalizedStock{Ticker: "VOD", Exchange: "LSE", Name: "Vodafone"})
	require.NoError(t, err)
	id2, err := resolver.Resolve(NormalizedStock{Ticker: "VOD", Exchange: "US", Name: "Vodafone ADR"})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, store.inserted, 2)
	assert.Equal(t, 2, resolver.Created())
}
