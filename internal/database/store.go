package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/portfolio-import/internal/domain"
)

// Store is the local sqlite store backend, used to rehearse an import
// without touching the remote project. Same find/insert capability as the
// Supabase client.
type Store struct {
	db  *DB
	log zerolog.Logger
}

// NewStore creates a new local store over an open database
func NewStore(db *DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("store", "sqlite").Logger(),
	}
}

// FindStock returns the id of an existing (ticker, exchange) pair.
func (s *Store) FindStock(ticker, exchange string) (int64, bool, error) {
	query := "SELECT id FROM stocks WHERE ticker = ? AND exchange = ?"

	var id int64
	err := s.db.Conn().QueryRow(query, ticker, exchange).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find stock: %w", err)
	}

	return id, true, nil
}

// InsertStock writes a new stock row and returns the assigned id.
func (s *Store) InsertStock(stock domain.StockRecord) (int64, error) {
	query := `
		INSERT INTO stocks (ticker, exchange, name, currency, sector, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Conn().Exec(query,
		stock.Ticker,
		stock.Exchange,
		stock.Name,
		nullString(stock.Currency),
		nullString(stock.Sector),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert stock: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted stock id: %w", err)
	}

	return id, nil
}

// InsertTrade writes one trade row.
func (s *Store) InsertTrade(trade domain.TradeRecord) error {
	query := `
		INSERT INTO trades
		(stock_id, trade_type, trade_date, quantity, price_per_share,
		 price_currency, gbp_value, fx_rate, fee, fee_currency, local_value,
		 currency_pair, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Conn().Exec(query,
		trade.StockID,
		trade.TradeType,
		trade.TradeDate,
		trade.Quantity.String(),
		nullDecimal(trade.PricePerShare),
		nullString(trade.PriceCurrency),
		nullDecimal(trade.GBPValue),
		nullDecimal(trade.FxRate),
		nullDecimal(trade.Fee),
		nullString(trade.FeeCurrency),
		nullDecimal(trade.LocalValue),
		nullString(trade.CurrencyPair),
		trade.Notes,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}
