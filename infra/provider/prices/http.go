// Package prices implements the crypto price providers: an HTTP source, a
// Redis-backed caching decorator, and a static provider for development and
// tests.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tincan-finance/tincan/pkg/config"
	"github.com/tincan-finance/tincan/pkg/service/crypto"
)

// HTTPProvider quotes USD prices from a simple-price JSON endpoint:
// GET {base}?symbols=BTC,ETH returns {"BTC": 64123.5, "ETH": 3321.0}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTP creates an HTTP price provider from config.
func NewHTTP(cfg config.PriceProvider) *HTTPProvider {
	return &HTTPProvider{
		baseURL: cfg.ApiUrl,
		client:  &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Prices implements crypto.PriceProvider.
func (p *HTTPProvider) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("price provider url: %w", err)
	}
	q := u.Query()
	q.Set("symbols", strings.Join(symbols, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price provider returned %d", resp.StatusCode)
	}

	var quotes map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("decode price response: %w", err)
	}

	out := make(map[string]float64, len(quotes))
	for sym, price := range quotes {
		out[strings.ToUpper(sym)] = price
	}
	return out, nil
}

var _ crypto.PriceProvider = (*HTTPProvider)(nil)

// Static serves a fixed price table; development and test use.
type Static struct {
	Quotes map[string]float64
	// AsOf is informational only.
	AsOf time.Time
}

// NewStatic creates a static provider over the given table.
func NewStatic(quotes map[string]float64) *Static {
	return &Static{Quotes: quotes, AsOf: time.Now()}
}

// Prices implements crypto.PriceProvider.
func (s *Static) Prices(_ context.Context, symbols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if price, ok := s.Quotes[strings.ToUpper(sym)]; ok {
			out[strings.ToUpper(sym)] = price
		}
	}
	return out, nil
}

var _ crypto.PriceProvider = (*Static)(nil)
