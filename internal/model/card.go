package model

// Condition tiers a user can pick for a physical card
const (
	ConditionNearMint         = "Near Mint"
	ConditionLightlyPlayed    = "Lightly Played"
	ConditionModeratelyPlayed = "Moderately Played"
)

// Conditions lists the tiers in display order
var Conditions = []string{
	ConditionNearMint,
	ConditionLightlyPlayed,
	ConditionModeratelyPlayed,
}

// CardDescriptor is the user-entered identification of a physical card.
// It lives for exactly one search workflow and is replaced by the next one.
type CardDescriptor struct {
	Name      string `json:"name"`
	Set       string `json:"set"`
	Number    string `json:"number,omitempty"`
	Condition string `json:"condition"`
	PhotoPath string `json:"photo_path,omitempty"`
}

// Prices holds the market price points reported by the catalog
type Prices struct {
	Low    float64 `json:"low,omitempty"`
	Mid    float64 `json:"mid,omitempty"`
	High   float64 `json:"high,omitempty"`
	Market float64 `json:"market,omitempty"`
}

// Card is one catalog entry, either fetched remotely or synthesized locally
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Set      string `json:"set"`
	SetCode  string `json:"set_code"`
	Number   string `json:"number"`
	ImageURL string `json:"image_url"`
	Rarity   string `json:"rarity"`
	Type     string `json:"type"`
	HP       string `json:"hp"`
	Prices   Prices `json:"prices"`
}

// PricedCard is a Card enriched with a condition-adjusted price estimate.
// Invariant: AdjustedPrice == BasePrice * ConditionMultiplier.
type PricedCard struct {
	Card
	SelectedCondition   string  `json:"selected_condition"`
	BasePrice           float64 `json:"base_price"`
	AdjustedPrice       float64 `json:"adjusted_price"`
	ConditionMultiplier float64 `json:"condition_multiplier"`
	PriceBreakdown      string  `json:"price_breakdown"`
}
