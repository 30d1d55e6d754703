package automata

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/substrate/bounded"
	"github.com/lixenwraith/substrate/buffer"
	"github.com/lixenwraith/substrate/color"
	"github.com/lixenwraith/substrate/mutagen"
)

// LifeLikeTable is one birth/survival pair: birth applies to a cell not
// carrying the colour under evaluation, survival to one that does.
type LifeLikeTable struct {
	Birth    bounded.Boolean `json:"birth"`
	Survival bounded.Boolean `json:"survival"`
}

func RandomLifeLikeTable(rng *rand.Rand) LifeLikeTable {
	return LifeLikeTable{
		Birth:    bounded.RandomBoolean(rng),
		Survival: bounded.RandomBoolean(rng),
	}
}

func GenerateLifeLikeTable(rng *rand.Rand, ctx *mutagen.Context) LifeLikeTable {
	ctx.Report("LifeLikeTable", mutagen.EventGenerate)
	return RandomLifeLikeTable(rng)
}

// Mutate resamples the pair or toggles one flag.
func (t *LifeLikeTable) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("LifeLikeTable", mutagen.EventMutate)
	switch {
	case rng.IntN(2) == 0:
		*t = RandomLifeLikeTable(rng)
	case rng.IntN(2) == 0:
		t.Birth = t.Birth.Toggle()
	default:
		t.Survival = t.Survival.Toggle()
	}
}

// IndivRule holds one birth/survival pair per possible neighbour count
// over its neighbourhood, so Rules has len(offsets)+1 entries.
type IndivRule struct {
	Neighbourhood PixelNeighbourhood `json:"neighbourhood"`
	Rules         []LifeLikeTable    `json:"rules"`
}

func RandomIndivRule(rng *rand.Rand) IndivRule {
	neighbourhood := RandomPixelNeighbourhood(rng)
	rules := make([]LifeLikeTable, len(neighbourhood.Offsets())+1)
	for i := range rules {
		rules[i] = RandomLifeLikeTable(rng)
	}
	return IndivRule{Neighbourhood: neighbourhood, Rules: rules}
}

func GenerateIndivRule(rng *rand.Rand, ctx *mutagen.Context) IndivRule {
	ctx.Report("IndivRule", mutagen.EventGenerate)
	return RandomIndivRule(rng)
}

// Apply evaluates the rule for a cell that does or does not carry the
// colour under evaluation and has count matching neighbours.
func (r IndivRule) Apply(carrying bool, count int) bool {
	table := r.Rules[count]
	if carrying {
		return table.Survival.Value()
	}
	return table.Birth.Value()
}

// Mutate resamples the whole rule or one birth/survival pair.
func (r *IndivRule) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("IndivRule", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*r = RandomIndivRule(rng)
	} else {
		r.Rules[rng.IntN(len(r.Rules))].Mutate(rng, ctx)
	}
}

func (r *IndivRule) UnmarshalJSON(data []byte) error {
	type alias IndivRule
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding indiv rule: %w", err)
	}
	if len(decoded.Rules) != len(decoded.Neighbourhood.Offsets())+1 {
		return fmt.Errorf("decoding indiv rule: %d tables for %d offsets",
			len(decoded.Rules), len(decoded.Neighbourhood.Offsets()))
	}
	*r = IndivRule(decoded)
	return nil
}

// LifeLikeRule generalises life-like automata to the 8 bit colours. Each
// colour carries its own IndivRule; ColorOrder is a fixed shuffled
// permutation establishing evaluation precedence.
type LifeLikeRule struct {
	ColorOrder [8]color.BitColor `json:"color_order"`
	ColorRules [8]IndivRule      `json:"color_rules"`
}

func RandomLifeLikeRule(rng *rand.Rand) LifeLikeRule {
	var rule LifeLikeRule
	order := color.BitColorValues()
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	rule.ColorOrder = order
	for i := range rule.ColorRules {
		rule.ColorRules[i] = RandomIndivRule(rng)
	}
	return rule
}

func GenerateLifeLikeRule(rng *rand.Rand, ctx *mutagen.Context) LifeLikeRule {
	ctx.Report("LifeLikeRule", mutagen.EventGenerate)
	return RandomLifeLikeRule(rng)
}

// Next evaluates the rule at (x, y). Colours are visited in ColorOrder;
// for each, neighbours sharing a channel with the colour are counted over
// that colour's neighbourhood, and the matching birth or survival flag is
// consulted. The first colour whose flag fires is the next state; when no
// colour fires the cell goes black.
func (r LifeLikeRule) Next(cells *buffer.Buffer[color.BitColor], x, y int) color.BitColor {
	current := cells.At(x, y)
	for i, c := range r.ColorOrder {
		rule := r.ColorRules[i]
		count := 0
		for _, off := range rule.Neighbourhood.Offsets() {
			if cells.AtWrapped(x+off.DX, y+off.DY).HasColor(c) {
				count++
			}
		}
		if rule.Apply(current.HasColor(c), count) {
			return c
		}
	}
	return color.BitBlack
}

// Mutate resamples the whole rule set or mutates one colour's rule.
func (r *LifeLikeRule) Mutate(rng *rand.Rand, ctx *mutagen.Context) {
	ctx.Report("LifeLikeRule", mutagen.EventMutate)
	if rng.IntN(2) == 0 {
		*r = RandomLifeLikeRule(rng)
	} else {
		r.ColorRules[rng.IntN(len(r.ColorRules))].Mutate(rng, ctx)
	}
}
