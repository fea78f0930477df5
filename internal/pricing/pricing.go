// Package pricing turns a catalog card and a condition tier into a price
// estimate. Everything here is pure: no I/O, no shared state.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/existflow/cardscout/internal/model"
)

// defaultMultiplier applies to any condition string outside the known tiers
const defaultMultiplier = 0.50

var conditionMultipliers = map[string]float64{
	model.ConditionNearMint:         1.0,
	model.ConditionLightlyPlayed:    0.75,
	model.ConditionModeratelyPlayed: 0.50,
}

// sampleImages maps well-known card names to demo artwork. Unknown names
// get the generic card back.
var sampleImages = map[string]string{
	"charizard": "https://images.pokemontcg.io/base1/4_hires.png",
	"blastoise": "https://images.pokemontcg.io/base1/2_hires.png",
	"venusaur":  "https://images.pokemontcg.io/base1/15_hires.png",
	"pikachu":   "https://images.pokemontcg.io/base1/58_hires.png",
}

const genericImage = "https://images.pokemontcg.io/cardback.png"

// Multiplier returns the condition multiplier. Unrecognized conditions fall
// back to the lowest tier silently, matching the original behavior.
func Multiplier(condition string) float64 {
	if m, ok := conditionMultipliers[condition]; ok {
		return m
	}
	return defaultMultiplier
}

// Enrich returns a copy of card with the condition-adjusted price applied.
// BasePrice comes from the catalog market price when present, otherwise
// from the deterministic mock price.
func Enrich(card model.Card, condition string) model.PricedCard {
	base := card.Prices.Market
	if base <= 0 {
		base = MockPrice(card.Name)
	}

	mult := Multiplier(condition)
	adjusted := round2(base * mult)

	return model.PricedCard{
		Card:                card,
		SelectedCondition:   condition,
		BasePrice:           base,
		AdjustedPrice:       adjusted,
		ConditionMultiplier: mult,
		PriceBreakdown:      fmt.Sprintf("$%.2f x %.2f (%s) = $%.2f", base, mult, condition, adjusted),
	}
}

// MockPrice derives a stable demo price from the first and last byte of the
// card name. Same name, same price, every time.
func MockPrice(name string) float64 {
	if name == "" {
		return 9.99
	}

	first := int(name[0])
	last := int(name[len(name)-1])

	dollars := 5 + (first*31+last)%95
	cents := (first * last) % 100

	return float64(dollars) + float64(cents)/100
}

// Synthesize builds a local stand-in card for a descriptor the catalog
// could not resolve.
func Synthesize(desc model.CardDescriptor) model.Card {
	image := genericImage
	if url, ok := sampleImages[strings.ToLower(strings.TrimSpace(desc.Name))]; ok {
		image = url
	}

	price := MockPrice(desc.Name)

	return model.Card{
		ID:       "local-" + strings.ToLower(strings.ReplaceAll(strings.TrimSpace(desc.Name), " ", "-")),
		Name:     desc.Name,
		Set:      desc.Set,
		Number:   desc.Number,
		ImageURL: image,
		Rarity:   "Unverified",
		Type:     "Unknown",
		Prices: model.Prices{
			Low:    round2(price * 0.8),
			High:   round2(price * 1.2),
			Market: price,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
