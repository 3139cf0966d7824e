package analysis

import "sort"

// TickerInfo describes a listed instrument
type TickerInfo struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Exchange  string `json:"exchange"`
	Sector    string `json:"sector"`
	Supported bool   `json:"supported"`
}

// DefaultBenchmark is the S&P/TSX Composite index
const DefaultBenchmark = "^GSPTSE"

var catalog = map[string]TickerInfo{
	"SHOP.TO": {Name: "Shopify Inc", Sector: "Technology"},
	"RY.TO":   {Name: "Royal Bank of Canada", Sector: "Financial Services"},
	"TD.TO":   {Name: "Toronto-Dominion Bank", Sector: "Financial Services"},
	"CNR.TO":  {Name: "Canadian National Railway", Sector: "Industrials"},
	"CP.TO":   {Name: "Canadian Pacific Railway", Sector: "Industrials"},
	"BMO.TO":  {Name: "Bank of Montreal", Sector: "Financial Services"},
	"BNS.TO":  {Name: "Bank of Nova Scotia", Sector: "Financial Services"},
	"ABX.TO":  {Name: "Barrick Gold Corporation", Sector: "Materials"},
	"SU.TO":   {Name: "Suncor Energy Inc", Sector: "Energy"},
	"ENB.TO":  {Name: "Enbridge Inc", Sector: "Energy"},
	"TRP.TO":  {Name: "TC Energy Corporation", Sector: "Energy"},
	"MFC.TO":  {Name: "Manulife Financial Corporation", Sector: "Financial Services"},
	"GWO.TO":  {Name: "Great-West Lifeco Inc", Sector: "Financial Services"},
	"SLF.TO":  {Name: "Sun Life Financial Inc", Sector: "Financial Services"},
	"ATD.TO":  {Name: "Alimentation Couche-Tard Inc", Sector: "Consumer Discretionary"},
	"WCN.TO":  {Name: "Waste Connections Inc", Sector: "Industrials"},
	"CTC.TO":  {Name: "Canadian Tire Corporation", Sector: "Consumer Discretionary"},
	"L.TO":    {Name: "Loblaw Companies Limited", Sector: "Consumer Staples"},
	"MRU.TO":  {Name: "Metro Inc", Sector: "Consumer Staples"},
	"TFII.TO": {Name: "TFI International Inc", Sector: "Industrials"},
}

// LookupTicker returns catalog information; unknown tickers are marked unsupported
func LookupTicker(ticker string) TickerInfo {
	info, ok := catalog[ticker]
	if !ok {
		return TickerInfo{Ticker: ticker, Name: "Unknown", Exchange: "Unknown", Sector: "Unknown"}
	}
	info.Ticker = ticker
	info.Exchange = "TSX"
	info.Supported = true
	return info
}

// SupportedTickers lists every catalogued ticker
func SupportedTickers() []string {
	out := make([]string, 0, len(catalog))
	for t := range catalog {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
