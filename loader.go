package allocation

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// hierarchyFile is the YAML shape of the asset-class tree definition.
type hierarchyFile struct {
	Currency    string           `yaml:"currency"`
	CashTarget  float64          `yaml:"cash_target"`
	Investments []assetClassNode `yaml:"investments"`
}

// assetClassNode is one node of the tree: either a composite (with
// asset_classes) or a leaf (with holdings and a target_weight).
type assetClassNode struct {
	Name         string           `yaml:"name"`
	TargetWeight *float64         `yaml:"target_weight"`
	AssetClasses []assetClassNode `yaml:"asset_classes"`
	Holdings     []string         `yaml:"holdings"`
}

// holdingsFile is the YAML shape of the current positions. The optional
// prices section pins quotes for offline runs and overrides the quote
// service ticker by ticker.
type holdingsFile struct {
	CashValue float64               `yaml:"cash_value"`
	Holdings  map[string]float64    `yaml:"holdings"`
	Prices    map[string]priceEntry `yaml:"prices"`
}

type priceEntry struct {
	Price float64 `yaml:"price"`
	Bid   float64 `yaml:"bid"`
	Ask   float64 `yaml:"ask"`
}

// Loader builds a working-copy Portfolio from a hierarchy file and a
// holdings file, pricing every referenced ticker through the quote
// service in one up-front batch.
type Loader struct {
	Quotes QuoteService
}

// Load reads both files, fetches quotes, and assembles the portfolio.
// It returns the anomaly warnings accumulated while pricing holdings;
// warnings never fail the load, a missing price always does.
func (ld *Loader) Load(configPath, holdingsPath string) (*Portfolio, []Anomaly, error) {
	var hierarchy hierarchyFile
	if err := decodeYAMLFile(configPath, &hierarchy); err != nil {
		return nil, nil, err
	}
	var positions holdingsFile
	if err := decodeYAMLFile(holdingsPath, &positions); err != nil {
		return nil, nil, err
	}
	if len(hierarchy.Investments) == 0 {
		return nil, nil, &ConfigurationError{Reason: "the hierarchy file declares no investments"}
	}

	currency := hierarchy.Currency
	if currency == "" {
		currency = "USD"
	}

	quotes := ld.Quotes
	if quotes == nil {
		quotes = NewStaticQuotes()
	}
	// Pinned prices take precedence over the live service.
	if len(positions.Prices) > 0 {
		pinned := NewStaticQuotes()
		for ticker, p := range positions.Prices {
			pinned.Set(ticker, M(p.Price, currency), M(p.Bid, currency), M(p.Ask, currency))
		}
		quotes = &layeredQuotes{pinned: pinned, fallback: quotes}
	}

	// One batched fetch for every ticker the tree references.
	tickers := collectTickers(hierarchy.Investments, positions.Prices)
	if err := quotes.Cache(tickers); err != nil {
		return nil, nil, fmt.Errorf("could not fetch quotes: %w", err)
	}

	var warnings []Anomaly
	var children []AssetClass
	for _, node := range hierarchy.Investments {
		child, err := buildAssetClass(node, positions.Holdings, quotes, &warnings)
		if err != nil {
			return nil, nil, err
		}
		children = append(children, child)
	}

	p, err := NewPortfolio(M(positions.CashValue, currency), M(hierarchy.CashTarget, currency), children...)
	if err != nil {
		return nil, nil, err
	}
	return p, warnings, nil
}

func decodeYAMLFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("could not parse %q: %w", path, err)
	}
	return nil
}

// collectTickers extracts every ticker referenced by the tree, skipping
// the ones already pinned in the holdings file. Sorted for deterministic
// batch requests.
func collectTickers(nodes []assetClassNode, pinned map[string]priceEntry) []string {
	seen := make(map[string]bool)
	var walk func(node assetClassNode)
	walk = func(node assetClassNode) {
		for _, child := range node.AssetClasses {
			walk(child)
		}
		for _, ticker := range node.Holdings {
			if _, ok := pinned[ticker]; !ok {
				seen[ticker] = true
			}
		}
	}
	for _, node := range nodes {
		walk(node)
	}
	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

func buildAssetClass(node assetClassNode, shares map[string]float64, quotes QuoteService, warnings *[]Anomaly) (AssetClass, error) {
	if len(node.AssetClasses) > 0 {
		var children []AssetClass
		for _, childNode := range node.AssetClasses {
			child, err := buildAssetClass(childNode, shares, quotes, warnings)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if node.TargetWeight != nil {
			return NewCompositeWithTarget(node.Name, Percent(*node.TargetWeight), children...)
		}
		return NewComposite(node.Name, children...)
	}

	if node.TargetWeight == nil {
		return nil, &ConfigurationError{Node: node.Name, Reason: "a leaf asset class must declare a target weight"}
	}
	var positions []*Holding
	for _, ticker := range node.Holdings {
		h := NewHolding(ticker, Q(shares[ticker]))
		q, err := quotes.Quote(ticker)
		if err != nil {
			return nil, err
		}
		*warnings = append(*warnings, h.SetQuote(q)...)
		positions = append(positions, h)
	}
	return NewLeaf(node.Name, Percent(*node.TargetWeight), positions...)
}

// layeredQuotes consults pinned prices first and falls back to the live
// service for everything else.
type layeredQuotes struct {
	pinned   *StaticQuotes
	fallback QuoteService
}

func (l *layeredQuotes) Quote(ticker string) (Quote, error) {
	if q, err := l.pinned.Quote(ticker); err == nil {
		return q, nil
	}
	return l.fallback.Quote(ticker)
}

func (l *layeredQuotes) Cache(tickers []string) error {
	var missing []string
	for _, t := range tickers {
		if _, err := l.pinned.Quote(t); err != nil {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return l.fallback.Cache(missing)
}
