package catalog

// defaultInstruments is the full universe the levels draw from. Prices and
// volatilities are reference values for the synthetic market, not live data.
var defaultInstruments = []Instrument{
	{
		ID:          "aapl",
		Name:        "Apple",
		Ticker:      "AAPL",
		Description: "Technology company - smartphones, computers, and devices",
		BasePrice:   175,
		Volatility:  0.18,
		Sector:      "tech",
		Risk:        RiskMedium,
	},
	{
		ID:          "tsla",
		Name:        "Tesla",
		Ticker:      "TSLA",
		Description: "Electric vehicles and clean energy",
		BasePrice:   240,
		Volatility:  0.30,
		Sector:      "automotive",
		Risk:        RiskHigh,
	},
	{
		ID:          "nvda",
		Name:        "Nvidia",
		Ticker:      "NVDA",
		Description: "Graphics processors and AI chips",
		BasePrice:   450,
		Volatility:  0.25,
		Sector:      "tech",
		Risk:        RiskHigh,
	},
	{
		ID:          "msft",
		Name:        "Microsoft",
		Ticker:      "MSFT",
		Description: "Software, cloud services, and enterprise solutions",
		BasePrice:   380,
		Volatility:  0.16,
		Sector:      "tech",
		Risk:        RiskMedium,
	},
	{
		ID:          "googl",
		Name:        "Alphabet",
		Ticker:      "GOOGL",
		Description: "Internet search, cloud computing, and advertising",
		BasePrice:   140,
		Volatility:  0.20,
		Sector:      "tech",
		Risk:        RiskMedium,
	},
	{
		ID:          "amzn",
		Name:        "Amazon",
		Ticker:      "AMZN",
		Description: "E-commerce, cloud computing, and streaming",
		BasePrice:   150,
		Volatility:  0.22,
		Sector:      "tech",
		Risk:        RiskMedium,
	},
	{
		ID:          "meta",
		Name:        "Meta",
		Ticker:      "META",
		Description: "Social media, virtual reality, and digital advertising",
		BasePrice:   480,
		Volatility:  0.28,
		Sector:      "tech",
		Risk:        RiskHigh,
	},
	{
		ID:          "jpm",
		Name:        "JPMorgan Chase",
		Ticker:      "JPM",
		Description: "Banking and financial services",
		BasePrice:   160,
		Volatility:  0.15,
		Sector:      "finance",
		Risk:        RiskMedium,
	},
	{
		ID:          "v",
		Name:        "Visa",
		Ticker:      "V",
		Description: "Payment processing and financial services",
		BasePrice:   270,
		Volatility:  0.14,
		Sector:      "finance",
		Risk:        RiskLow,
	},
	{
		ID:          "jnj",
		Name:        "Johnson & Johnson",
		Ticker:      "JNJ",
		Description: "Pharmaceuticals and healthcare products",
		BasePrice:   155,
		Volatility:  0.12,
		Sector:      "healthcare",
		Risk:        RiskLow,
	},
	{
		ID:          "wmt",
		Name:        "Walmart",
		Ticker:      "WMT",
		Description: "Retail and e-commerce",
		BasePrice:   165,
		Volatility:  0.13,
		Sector:      "retail",
		Risk:        RiskLow,
	},
	{
		ID:          "nflx",
		Name:        "Netflix",
		Ticker:      "NFLX",
		Description: "Streaming entertainment and content",
		BasePrice:   420,
		Volatility:  0.24,
		Sector:      "entertainment",
		Risk:        RiskHigh,
	},
	{
		ID:          "amd",
		Name:        "AMD",
		Ticker:      "AMD",
		Description: "Semiconductors and processors",
		BasePrice:   135,
		Volatility:  0.26,
		Sector:      "tech",
		Risk:        RiskHigh,
	},
}
