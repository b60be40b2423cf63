package yfin

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/allocation"
)

// quoteServer fakes the Yahoo Finance v7 quote endpoint and counts the
// requests it receives.
func quoteServer(t *testing.T, body string, hits *int) *Service {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Path != "/v7/finance/quote" {
			t.Errorf("request path = %q, want /v7/finance/quote", r.URL.Path)
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	s := New()
	s.base = server.URL
	return s
}

const twoQuotes = `{
  "quoteResponse": {
    "result": [
      {"symbol": "VTI", "currency": "USD", "regularMarketPrice": 250.5, "bid": 250.4, "ask": 250.6},
      {"symbol": "BND", "currency": "USD", "regularMarketPrice": 72.1, "bid": 72.0, "ask": 72.2}
    ],
    "error": null
  }
}`

func TestCacheBatchesOneRoundTrip(t *testing.T) {
	var hits int
	s := quoteServer(t, twoQuotes, &hits)

	if err := s.Cache([]string{"VTI", "BND"}); err != nil {
		t.Fatalf("Cache() = %v", err)
	}
	if hits != 1 {
		t.Errorf("Cache() made %d requests, want 1", hits)
	}

	q, err := s.Quote("VTI")
	if err != nil {
		t.Fatalf("Quote(VTI) = %v", err)
	}
	if !q.Price.Equal(allocation.M(250.5, "USD")) {
		t.Errorf("Quote(VTI).Price = %s, want %s", q.Price, allocation.M(250.5, "USD"))
	}
	if !q.Bid.Equal(allocation.M(250.4, "USD")) || !q.Ask.Equal(allocation.M(250.6, "USD")) {
		t.Errorf("Quote(VTI) bid/ask = %s/%s, want 250.4/250.6", q.Bid, q.Ask)
	}
	if _, err := s.Quote("BND"); err != nil {
		t.Errorf("Quote(BND) = %v", err)
	}
	// Both quotes came from the first batch.
	if hits != 1 {
		t.Errorf("Quote() after Cache() made %d requests, want 1", hits)
	}
}

func TestQuoteFetchesOnDemand(t *testing.T) {
	var hits int
	s := quoteServer(t, twoQuotes, &hits)

	if _, err := s.Quote("VTI"); err != nil {
		t.Fatalf("Quote() = %v", err)
	}
	if hits != 1 {
		t.Errorf("Quote() made %d requests, want 1", hits)
	}
}

func TestQuoteMissingBid(t *testing.T) {
	var hits int
	s := quoteServer(t, `{
  "quoteResponse": {
    "result": [{"symbol": "VTI", "currency": "USD", "regularMarketPrice": 250.5, "ask": 250.6}],
    "error": null
  }
}`, &hits)

	_, err := s.Quote("VTI")
	var perr *allocation.PriceUnavailableError
	if !errors.As(err, &perr) {
		t.Fatalf("Quote() = %v, want *PriceUnavailableError", err)
	}
	if perr.Field != "bid" {
		t.Errorf("missing field = %q, want bid", perr.Field)
	}
}

func TestQuoteUnknownTicker(t *testing.T) {
	var hits int
	s := quoteServer(t, `{"quoteResponse": {"result": [], "error": null}}`, &hits)

	_, err := s.Quote("NOPE")
	var perr *allocation.PriceUnavailableError
	if !errors.As(err, &perr) {
		t.Errorf("Quote() for an unknown ticker = %v, want *PriceUnavailableError", err)
	}
}

func TestCacheServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)
	s := New()
	s.base = server.URL

	if err := s.Cache([]string{"VTI"}); err == nil {
		t.Error("Cache() against a failing endpoint succeeded")
	}
}
