package domain

import "github.com/shopspring/decimal"

// StockRecord is a stock row as written to the store. Identity is the
// (ticker, exchange) pair; the store assigns the numeric id.
type StockRecord struct {
	Ticker   string  `json:"ticker"`
	Exchange string  `json:"exchange"`
	Name     string  `json:"name"`
	Currency *string `json:"currency"`
	Sector   *string `json:"sector,omitempty"`
}

// TradeRecord is a trade row as written to the store. Optional fields are
// pointers; nil serializes to JSON null rather than a zero sentinel.
type TradeRecord struct {
	StockID       int64            `json:"stock_id"`
	TradeType     string           `json:"trade_type"` // uppercased, e.g. BUY
	TradeDate     string           `json:"trade_date"` // YYYY-MM-DD
	Quantity      decimal.Decimal  `json:"quantity"`
	PricePerShare *decimal.Decimal `json:"price_per_share"`
	PriceCurrency *string          `json:"price_currency"`
	GBPValue      *decimal.Decimal `json:"gbp_value"`
	FxRate        *decimal.Decimal `json:"fx_rate"`
	Fee           *decimal.Decimal `json:"fee"`
	FeeCurrency   *string          `json:"fee_currency"`
	LocalValue    *decimal.Decimal `json:"local_value"`
	CurrencyPair  *string          `json:"currency_pair"`
	Notes         string           `json:"notes"`
}
