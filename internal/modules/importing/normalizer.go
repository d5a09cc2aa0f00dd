package importing

import "strings"

// SplitTicker derives the canonical (ticker, exchange) pair from a raw
// ticker string. The split is on the first dot: "OGZD.LSE" -> ("OGZD",
// "LSE"). A ticker without a dot, e.g. "CASH", has an empty exchange code.
func SplitTicker(raw string) (ticker, exchange string) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return raw, ""
}

// NormalizeStock derives the stock identity from one row. Returns ok=false
// when the row cannot name a stock (ticker or holding name absent); such
// rows produce neither a stock nor a trade.
func NormalizeStock(row Row) (NormalizedStock, bool) {
	rawTicker := row.Get(ColTicker)
	name := row.Get(ColHolding)
	if rawTicker == nil || name == nil {
		return NormalizedStock{}, false
	}

	ticker, exchange := SplitTicker(*rawTicker)
	if ticker == "" {
		return NormalizedStock{}, false
	}

	return NormalizedStock{
		Ticker:   ticker,
		Exchange: exchange,
		Name:     *name,
		Currency: row.Get(ColCurrency),
		Sector:   row.Get(ColSector),
	}, true
}
