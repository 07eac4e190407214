package news

// templates is the fixed headline pool. Selection is uniform per day; the
// pool makes no attempt at cross-day narrative coherence, so the same
// story can plausibly repeat on consecutive days.
var templates = []template{
	// Positive
	{
		headline:    "Strong earnings beat expectations",
		description: "Better-than-expected quarterly results.",
		impact:      ImpactPositive,
		maxCount:    3,
	},
	{
		headline:    "Product launch drives investor interest",
		description: "New offering generates excitement.",
		impact:      ImpactPositive,
		sectors:     []string{"tech"},
		maxCount:    2,
	},
	{
		headline:    "Market rally continues",
		description: "Broad gains across major sectors.",
		impact:      ImpactPositive,
		maxCount:    5,
	},
	{
		headline:    "Positive analyst upgrade",
		description: "Institutional investors increase positions.",
		impact:      ImpactPositive,
		maxCount:    2,
	},

	// Negative
	{
		headline:    "Earnings miss expectations",
		description: "Weaker-than-expected quarterly results.",
		impact:      ImpactNegative,
		maxCount:    3,
	},
	{
		headline:    "Regulatory concerns weigh on markets",
		description: "Uncertainty creates selling pressure.",
		impact:      ImpactNegative,
		sectors:     []string{"tech", "finance"},
		maxCount:    3,
	},
	{
		headline:    "Market correction deepens",
		description: "Selling pressure intensifies across sectors.",
		impact:      ImpactNegative,
		maxCount:    5,
	},
	{
		headline:    "Economic data disappoints",
		description: "Concerns about growth prospects.",
		impact:      ImpactNegative,
		maxCount:    4,
	},

	// Neutral
	{
		headline:    "Markets trade in narrow range",
		description: "Mixed signals keep prices stable.",
		impact:      ImpactNeutral,
		maxCount:    3,
	},
	{
		headline:    "Sector rotation continues",
		description: "Investors shift allocations between industries.",
		impact:      ImpactNeutral,
		maxCount:    4,
	},
	{
		headline:    "Low volume trading session",
		description: "Markets move quietly on limited activity.",
		impact:      ImpactNeutral,
		maxCount:    2,
	},
}
