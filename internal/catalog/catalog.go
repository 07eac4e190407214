package catalog

// InstrumentID uniquely identifies an instrument.
type InstrumentID string

// RiskTier is a coarse risk label shown to the player.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// Instrument is a catalog entry. Instances are value objects: defined once
// at process start and never mutated.
type Instrument struct {
	ID          InstrumentID
	Name        string
	Ticker      string
	Description string
	BasePrice   float64 // reference price at level start
	Volatility  float64 // 0..1 coefficient
	Sector      string
	Risk        RiskTier
}

// Catalog is a read-only set of instruments, safe to share by reference
// across play-throughs.
type Catalog struct {
	byID  map[InstrumentID]Instrument
	order []InstrumentID
}

// New builds a Catalog from a list of instruments, preserving order.
func New(instruments []Instrument) *Catalog {
	c := &Catalog{
		byID:  make(map[InstrumentID]Instrument, len(instruments)),
		order: make([]InstrumentID, 0, len(instruments)),
	}
	for _, ins := range instruments {
		if _, dup := c.byID[ins.ID]; dup {
			continue
		}
		c.byID[ins.ID] = ins
		c.order = append(c.order, ins.ID)
	}
	return c
}

// Default returns the standard catalog used by the game.
func Default() *Catalog {
	return New(defaultInstruments)
}

// Get returns the instrument with the given id.
func (c *Catalog) Get(id InstrumentID) (Instrument, bool) {
	ins, ok := c.byID[id]
	return ins, ok
}

// All returns every instrument in catalog order.
func (c *Catalog) All() []Instrument {
	out := make([]Instrument, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Select returns the instruments for the given ids, skipping unknown ones.
func (c *Catalog) Select(ids []InstrumentID) []Instrument {
	out := make([]Instrument, 0, len(ids))
	for _, id := range ids {
		if ins, ok := c.byID[id]; ok {
			out = append(out, ins)
		}
	}
	return out
}

// Len returns the number of instruments in the catalog.
func (c *Catalog) Len() int { return len(c.order) }
