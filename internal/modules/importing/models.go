package importing

import "strings"

// Column names expected in the trade-history export. Only the required
// columns must be present; the rest are optional and coalesce to nil.
const (
	ColTicker       = "Ticker"
	ColHolding      = "Holding"
	ColCurrency     = "Holding Currency"
	ColType         = "Type"
	ColDate         = "Date"
	ColQuantity     = "Quantity"
	ColPrice        = "Price"
	ColGBPValue     = "Value (GBP)"
	ColExchangeRate = "Exchange Rate"
	ColFee          = "Fee"
	ColFeeCurrency  = "Fee Currency"
	ColLocalValue   = "Local Value"
	ColCurrencyPair = "Currency Pair"
	ColSector       = "Sector"
)

// Tokens spreadsheet exports use for an empty cell. Any of these, or a
// blank/whitespace cell, reads as absent.
var missingTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"n/a":  {},
	"na":   {},
	"null": {},
	"none": {},
}

// Row is a single record of the input table, keyed by column header.
type Row struct {
	values map[string]string
}

// Get returns the cell value for a column, or nil when the column is
// missing from the file or the cell holds no usable value.
func (r Row) Get(column string) *string {
	raw, ok := r.values[column]
	if !ok {
		return nil
	}

	value := strings.TrimSpace(raw)
	if _, missing := missingTokens[strings.ToLower(value)]; missing {
		return nil
	}

	return &value
}

// NormalizedStock is the canonical stock identity derived from one row.
type NormalizedStock struct {
	Ticker   string
	Exchange string
	Name     string
	Currency *string
	Sector   *string
}

// StockKey identifies a stock within one run's dedup mapping.
type StockKey struct {
	Ticker   string
	Exchange string
}

// Summary reports what one import run did.
type Summary struct {
	Rows           int
	StocksResolved int
	StocksCreated  int
	TradesInserted int
	RowsSkipped    int
}
