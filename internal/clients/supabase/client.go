package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/portfolio-import/internal/domain"
)

// Client talks to a Supabase project's PostgREST endpoint. It is the
// production store for the importer: stocks are queried and inserted,
// trades are write-only.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Supabase REST client
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "supabase").Logger(),
	}
}

// idRow is the shape PostgREST returns for a select=id query or a
// return=representation insert.
type idRow struct {
	ID int64 `json:"id"`
}

// FindStock queries the stocks table by exact (ticker, exchange) match.
func (c *Client) FindStock(ticker, exchange string) (int64, bool, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("ticker", "eq."+ticker)
	query.Set("exchange", "eq."+exchange)

	body, err := c.get("/rest/v1/stocks?" + query.Encode())
	if err != nil {
		return 0, false, err
	}

	var rows []idRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, false, fmt.Errorf("failed to parse stocks response: %w", err)
	}
	if len(rows) == 0 {
		return 0, false, nil
	}

	return rows[0].ID, true, nil
}

// InsertStock writes a new stock row and returns the assigned id.
func (c *Client) InsertStock(stock domain.StockRecord) (int64, error) {
	body, err := c.post("/rest/v1/stocks", stock, true)
	if err != nil {
		return 0, err
	}

	var rows []idRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse insert response: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert returned no rows for stock %s.%s", stock.Ticker, stock.Exchange)
	}

	c.log.Debug().
		Str("ticker", stock.Ticker).
		Str("exchange", stock.Exchange).
		Int64("id", rows[0].ID).
		Msg("Stock inserted")

	return rows[0].ID, nil
}

// InsertTrade writes one trade row. The response body is not consumed.
func (c *Client) InsertTrade(trade domain.TradeRecord) error {
	if _, err := c.post("/rest/v1/trades", trade, false); err != nil {
		return err
	}
	return nil
}

// get makes a GET request against the REST endpoint
func (c *Client) get(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req, false)

	return c.do(req)
}

// post makes a POST request; returning=true asks PostgREST to echo the
// inserted rows back so the caller can read the assigned id.
func (c *Client) post(path string, payload interface{}, returning bool) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req, true)
	if returning {
		req.Header.Set("Prefer", "return=representation")
	} else {
		req.Header.Set("Prefer", "return=minimal")
	}

	return c.do(req)
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("supabase request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return body, nil
}
