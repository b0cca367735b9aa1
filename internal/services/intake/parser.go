// Package intake parses free-text portfolio descriptions into holdings.
package intake

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alokagarwal565/scenario-advisor/internal/models"
)

// Entry patterns, tried in order. Company names may contain letters,
// spaces and ampersands; quantities are bare integers.
var entryPatterns = []struct {
	re            *regexp.Regexp
	quantityFirst bool
}{
	{regexp.MustCompile(`^([A-Za-z\s&]+):\s*(\d+)\s*shares?$`), false}, // "Company: N shares"
	{regexp.MustCompile(`^([A-Za-z\s&]+):\s*(\d+)$`), false},           // "Company: N"
	{regexp.MustCompile(`^(\d+)\s+([A-Za-z\s&]+)$`), true},             // "N Company"
	{regexp.MustCompile(`^([A-Za-z\s&]+)\s+(\d+)$`), false},            // "Company N"
}

// symbolMapping resolves common Indian company names and abbreviations
// to NSE ticker symbols.
var symbolMapping = map[string]string{
	"tcs":                       "TCS.NS",
	"tata consultancy services": "TCS.NS",
	"hdfc bank":                 "HDFCBANK.NS",
	"hdfc":                      "HDFCBANK.NS",
	"reliance":                  "RELIANCE.NS",
	"reliance industries":       "RELIANCE.NS",
	"infosys":                   "INFY.NS",
	"wipro":                     "WIPRO.NS",
	"icici bank":                "ICICIBANK.NS",
	"icici":                     "ICICIBANK.NS",
	"sbi":                       "SBIN.NS",
	"state bank of india":       "SBIN.NS",
	"bharti airtel":             "BHARTIARTL.NS",
	"airtel":                    "BHARTIARTL.NS",
	"itc":                       "ITC.NS",
	"larsen & toubro":           "LT.NS",
	"l&t":                       "LT.NS",
	"asian paints":              "ASIANPAINT.NS",
	"bajaj finance":             "BAJFINANCE.NS",
	"maruti suzuki":             "MARUTI.NS",
	"maruti":                    "MARUTI.NS",
	"hul":                       "HINDUNILVR.NS",
	"hindustan unilever":        "HINDUNILVR.NS",
	"kotak mahindra bank":       "KOTAKBANK.NS",
	"kotak":                     "KOTAKBANK.NS",
	"axis bank":                 "AXISBANK.NS",
	"axis":                      "AXISBANK.NS",
	"mahindra & mahindra":       "M&M.NS",
	"m&m":                       "M&M.NS",
	"sun pharma":                "SUNPHARMA.NS",
	"dr reddy":                  "DRREDDY.NS",
	"tech mahindra":             "TECHM.NS",
	"hcl technologies":          "HCLTECH.NS",
	"hcl tech":                  "HCLTECH.NS",
	"titan":                     "TITAN.NS",
	"nestle":                    "NESTLEIND.NS",
	"bajaj auto":                "BAJAJ-AUTO.NS",
	"power grid":                "POWERGRID.NS",
	"ntpc":                      "NTPC.NS",
	"coal india":                "COALINDIA.NS",
	"ongc":                      "ONGC.NS",
	"ioc":                       "IOC.NS",
	"indian oil":                "IOC.NS",
	"bpcl":                      "BPCL.NS",
	"tata steel":                "TATASTEEL.NS",
	"jsw steel":                 "JSWSTEEL.NS",
	"ultratech cement":          "ULTRACEMCO.NS",
	"grasim":                    "GRASIM.NS",
	"adani enterprises":         "ADANIENT.NS",
	"adani ports":               "ADANIPORTS.NS",
	"eicher motors":             "EICHERMOT.NS",
}

// sectorMapping assigns sectors to the known NSE symbols. Symbols
// outside the table fall back to the Unknown bucket downstream.
var sectorMapping = map[string]string{
	"TCS.NS":        "Information Technology",
	"INFY.NS":       "Information Technology",
	"WIPRO.NS":      "Information Technology",
	"TECHM.NS":      "Information Technology",
	"HCLTECH.NS":    "Information Technology",
	"HDFCBANK.NS":   "Financial Services",
	"ICICIBANK.NS":  "Financial Services",
	"SBIN.NS":       "Financial Services",
	"KOTAKBANK.NS":  "Financial Services",
	"AXISBANK.NS":   "Financial Services",
	"BAJFINANCE.NS": "Financial Services",
	"RELIANCE.NS":   "Energy",
	"ONGC.NS":       "Energy",
	"IOC.NS":        "Energy",
	"BPCL.NS":       "Energy",
	"COALINDIA.NS":  "Energy",
	"NTPC.NS":       "Energy",
	"POWERGRID.NS":  "Energy",
	"BHARTIARTL.NS": "Telecommunications",
	"ITC.NS":        "Consumer Goods",
	"HINDUNILVR.NS": "Consumer Goods",
	"NESTLEIND.NS":  "Consumer Goods",
	"ASIANPAINT.NS": "Consumer Goods",
	"TITAN.NS":      "Consumer Goods",
	"MARUTI.NS":     "Automobile",
	"M&M.NS":        "Automobile",
	"BAJAJ-AUTO.NS": "Automobile",
	"EICHERMOT.NS":  "Automobile",
	"TATASTEEL.NS":  "Metals",
	"JSWSTEEL.NS":   "Metals",
	"ULTRACEMCO.NS": "Cement",
	"GRASIM.NS":     "Cement",
	"LT.NS":         "Infrastructure",
	"ADANIENT.NS":   "Infrastructure",
	"ADANIPORTS.NS": "Infrastructure",
	"SUNPHARMA.NS":  "Pharmaceuticals",
	"DRREDDY.NS":    "Pharmaceuticals",
}

// Parse splits a comma-separated portfolio description into holdings,
// returning whatever parsed plus the entries that matched no pattern.
func Parse(input string) ([]models.ParsedHolding, []string) {
	var holdings []models.ParsedHolding
	var invalid []string

	for _, raw := range strings.Split(input, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		holding, ok := parseEntry(entry)
		if !ok {
			invalid = append(invalid, entry)
			continue
		}
		holdings = append(holdings, holding)
	}

	return holdings, invalid
}

func parseEntry(entry string) (models.ParsedHolding, bool) {
	for _, p := range entryPatterns {
		match := p.re.FindStringSubmatch(entry)
		if match == nil {
			continue
		}

		company, qty := match[1], match[2]
		if p.quantityFirst {
			company, qty = match[2], match[1]
		}
		company = strings.TrimSpace(company)

		quantity, err := strconv.Atoi(qty)
		if err != nil {
			continue
		}

		symbol := ResolveSymbol(company)
		return models.ParsedHolding{
			CompanyName:   company,
			Symbol:        symbol,
			Quantity:      quantity,
			Sector:        SectorForSymbol(symbol),
			OriginalEntry: entry,
		}, true
	}
	return models.ParsedHolding{}, false
}

// ResolveSymbol maps a company name to its NSE ticker. Names outside
// the mapping are normalized into a best-guess .NS symbol.
func ResolveSymbol(companyName string) string {
	clean := strings.ToLower(strings.TrimSpace(companyName))

	if symbol, ok := symbolMapping[clean]; ok {
		return symbol
	}
	for _, name := range symbolNames {
		if strings.Contains(clean, name) || strings.Contains(name, clean) {
			return symbolMapping[name]
		}
	}

	return strings.ToUpper(strings.ReplaceAll(clean, " ", "")) + ".NS"
}

// symbolNames holds the mapping keys in a fixed order so partial
// matches resolve the same way on every call.
var symbolNames = func() []string {
	names := make([]string, 0, len(symbolMapping))
	for name := range symbolMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// SectorForSymbol returns the sector for a known NSE symbol, or the
// Unknown bucket.
func SectorForSymbol(symbol string) string {
	if sector, ok := sectorMapping[symbol]; ok {
		return sector
	}
	return models.SectorUnknown
}
