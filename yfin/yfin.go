// Package yfin provides quotes from the Yahoo Finance quote API. One
// batched request satisfies many tickers, and responses are cached for
// the lifetime of the service, i.e. one command invocation; prices are
// never refreshed mid-run.
package yfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/allocation"
	"golang.org/x/time/rate"
)

// Service implements allocation.QuoteService against the Yahoo Finance
// v7 quote endpoint. Not safe for concurrent use; a command is
// single-threaded anyway.
type Service struct {
	client  *http.Client
	limiter *rate.Limiter
	base    string
	cache   map[string]allocation.Quote
}

// New creates a quote service. Requests are rate limited to stay well
// under the endpoint's throttling.
func New() *Service {
	return &Service{
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		base:    "https://query1.finance.yahoo.com",
		cache:   make(map[string]allocation.Quote),
	}
}

// Cache fetches the quotes for every ticker not already cached, in a
// single round trip.
func (s *Service) Cache(tickers []string) error {
	var missing []string
	for _, t := range tickers {
		if _, ok := s.cache[t]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := s.limiter.Wait(context.Background()); err != nil {
		return err
	}
	addr := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", s.base, url.QueryEscape(strings.Join(missing, ",")))
	var jobj any
	if err := jwget(s.client, addr, &jobj); err != nil {
		return fmt.Errorf("could not fetch quotes for %v: %w", missing, err)
	}

	jval, err := jsonpath.Get("$.quoteResponse.result", jobj)
	if err != nil {
		return fmt.Errorf("unexpected quote response shape: %w", err)
	}
	results, ok := jval.([]any)
	if !ok {
		return fmt.Errorf("unexpected quote response shape: result is not a list")
	}
	for _, r := range results {
		entry, ok := r.(map[string]any)
		if !ok {
			continue
		}
		symbol, _ := entry["symbol"].(string)
		if symbol == "" {
			continue
		}
		currency, _ := entry["currency"].(string)
		s.cache[symbol] = allocation.Quote{
			Ticker: symbol,
			Price:  field(entry, "regularMarketPrice", currency),
			Bid:    field(entry, "bid", currency),
			Ask:    field(entry, "ask", currency),
		}
	}
	return nil
}

// Quote returns the cached quote for the ticker, fetching it first if
// needed. A quote missing any of its three prices fails with a
// *allocation.PriceUnavailableError naming the missing field.
func (s *Service) Quote(ticker string) (allocation.Quote, error) {
	if _, ok := s.cache[ticker]; !ok {
		if err := s.Cache([]string{ticker}); err != nil {
			return allocation.Quote{}, err
		}
	}
	q, ok := s.cache[ticker]
	if !ok {
		return allocation.Quote{}, &allocation.PriceUnavailableError{Ticker: ticker, Field: "market"}
	}
	switch {
	case q.Price.IsZero():
		return allocation.Quote{}, &allocation.PriceUnavailableError{Ticker: ticker, Field: "market"}
	case q.Bid.IsZero():
		return allocation.Quote{}, &allocation.PriceUnavailableError{Ticker: ticker, Field: "bid"}
	case q.Ask.IsZero():
		return allocation.Quote{}, &allocation.PriceUnavailableError{Ticker: ticker, Field: "ask"}
	}
	return q, nil
}

// field reads a float field from a quote entry, as zero Money when absent.
func field(entry map[string]any, name, currency string) allocation.Money {
	v, ok := entry[name].(float64)
	if !ok {
		return allocation.Money{}
	}
	return allocation.M(v, currency)
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
