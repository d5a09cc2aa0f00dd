package importing

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/portfolio-import/internal/domain"
)

// Broker exports write dates day-first; ISO dates pass through unchanged.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
}

// ParseTradeDate parses a day-first date string and re-encodes it as
// YYYY-MM-DD. A string matching no known layout is a hard error; the run
// aborts rather than guessing.
func ParseTradeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable trade date %q", value)
}

// TradeLoader turns rows into trade insertions, resolving stock ids
// through the mapping the StockResolver built in pass 1.
type TradeLoader struct {
	store    Store
	resolver *StockResolver
	inserted int
	skipped  int
	log      zerolog.Logger
}

// NewTradeLoader creates a new trade loader
func NewTradeLoader(store Store, resolver *StockResolver, log zerolog.Logger) *TradeLoader {
	return &TradeLoader{
		store:    store,
		resolver: resolver,
		log:      log.With().Str("component", "trade_loader").Logger(),
	}
}

// Load produces zero or one trade insertion for a row. Rows missing any of
// ticker, name, type, date or quantity are skipped. Date parse failures and
// store errors propagate and abort the run.
func (l *TradeLoader) Load(row Row) error {
	stock, ok := NormalizeStock(row)
	if !ok {
		l.skip("missing ticker or name")
		return nil
	}

	tradeType := row.Get(ColType)
	tradeDate := row.Get(ColDate)
	quantity := row.Get(ColQuantity)
	if tradeType == nil || tradeDate == nil || quantity == nil {
		l.skip("missing type, date or quantity")
		return nil
	}

	stockID, ok := l.resolver.Lookup(stock.Ticker, stock.Exchange)
	if !ok {
		// The row failed the stock pass; nothing to reference.
		l.skip("stock not resolved")
		return nil
	}

	isoDate, err := ParseTradeDate(*tradeDate)
	if err != nil {
		return err
	}

	qty, err := decimal.NewFromString(strings.TrimSpace(*quantity))
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", *quantity, err)
	}

	trade := domain.TradeRecord{
		StockID:       stockID,
		TradeType:     strings.ToUpper(*tradeType),
		TradeDate:     isoDate,
		Quantity:      qty,
		PriceCurrency: row.Get(ColCurrency),
		FeeCurrency:   row.Get(ColFeeCurrency),
		CurrencyPair:  row.Get(ColCurrencyPair),
		Notes:         "",
	}

	if trade.PricePerShare, err = decimalField(row, ColPrice); err != nil {
		return err
	}
	if trade.GBPValue, err = decimalField(row, ColGBPValue); err != nil {
		return err
	}
	if trade.FxRate, err = decimalField(row, ColExchangeRate); err != nil {
		return err
	}
	if trade.Fee, err = decimalField(row, ColFee); err != nil {
		return err
	}
	if trade.LocalValue, err = decimalField(row, ColLocalValue); err != nil {
		return err
	}

	if err := l.store.InsertTrade(trade); err != nil {
		return fmt.Errorf("failed to insert trade for %s.%s: %w", stock.Ticker, stock.Exchange, err)
	}

	l.inserted++
	return nil
}

// Inserted returns the number of trades written so far.
func (l *TradeLoader) Inserted() int {
	return l.inserted
}

// Skipped returns the number of rows skipped for missing required fields.
func (l *TradeLoader) Skipped() int {
	return l.skipped
}

func (l *TradeLoader) skip(reason string) {
	l.skipped++
	l.log.Debug().Str("reason", reason).Msg("Row skipped")
}

func decimalField(row Row, column string) (*decimal.Decimal, error) {
	value := row.Get(column)
	if value == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", column, *value, err)
	}
	return &d, nil
}
