package news

import (
	"fmt"
	"math/rand"

	"github.com/fintutor/marketsim/internal/catalog"
	"github.com/fintutor/marketsim/internal/level"
)

// Impact classifies a headline's expected effect on the affected prices.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Event is one day's headline. At most one Event exists per simulation day.
type Event struct {
	ID          string
	Day         int
	Headline    string
	Description string
	Impact      Impact
	// Affected lists the instrument ids the headline applies to.
	Affected []catalog.InstrumentID
}

// Mentions reports whether the event names the given instrument.
func (e *Event) Mentions(id catalog.InstrumentID) bool {
	if e == nil {
		return false
	}
	for _, a := range e.Affected {
		if a == id {
			return true
		}
	}
	return false
}

// template describes a headline and the rule deriving which of the level's
// instruments it touches: an optional sector filter, then a prefix slice.
type template struct {
	headline    string
	description string
	impact      Impact
	sectors     []string // empty = any sector
	maxCount    int
}

func (t template) affected(instruments []catalog.Instrument) []catalog.InstrumentID {
	out := make([]catalog.InstrumentID, 0, t.maxCount)
	for _, ins := range instruments {
		if len(t.sectors) > 0 && !containsSector(t.sectors, ins.Sector) {
			continue
		}
		out = append(out, ins.ID)
		if len(out) >= t.maxCount {
			break
		}
	}
	return out
}

func containsSector(sectors []string, s string) bool {
	for _, sec := range sectors {
		if sec == s {
			return true
		}
	}
	return false
}

// Generator produces the daily headline. All randomness flows through the
// injected source so tests can seed it.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns the headline for the given day, or nil when the level
// disables news or the simulation has not advanced past day zero.
func (g *Generator) Generate(def level.Definition, instruments []catalog.Instrument, day int) *Event {
	if !def.ShowNews || day == 0 {
		return nil
	}

	t := templates[g.rng.Intn(len(templates))]
	affected := t.affected(instruments)

	return &Event{
		ID:          fmt.Sprintf("news-day-%d", day),
		Day:         day,
		Headline:    t.headline,
		Description: t.description,
		Impact:      t.impact,
		Affected:    affected,
	}
}
