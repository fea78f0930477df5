package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/cardscout/internal/catalog"
	"github.com/existflow/cardscout/internal/model"
	"github.com/existflow/cardscout/internal/pricing"
)

var (
	priceName      string
	priceSet       string
	priceNumber    string
	priceCondition string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a card without the TUI",
	Long: `Look up a card and print its condition-adjusted price estimate.
Requires an active session (cardscout auth login).`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVar(&priceName, "name", "", "Card name (required)")
	priceCmd.Flags().StringVar(&priceSet, "set", "", "Set name (required)")
	priceCmd.Flags().StringVar(&priceNumber, "number", "", "Card number")
	priceCmd.Flags().StringVar(&priceCondition, "condition", model.ConditionNearMint, "Condition tier")
	_ = priceCmd.MarkFlagRequired("name")
	_ = priceCmd.MarkFlagRequired("set")
}

func runPrice(cmd *cobra.Command, args []string) error {
	kv, authStore, err := openStores()
	if err != nil {
		return err
	}
	defer kv.Close()

	if !authStore.IsLoggedIn() {
		return fmt.Errorf("please log in first: cardscout auth login")
	}

	desc := model.CardDescriptor{
		Name:      priceName,
		Set:       priceSet,
		Number:    priceNumber,
		Condition: priceCondition,
	}

	lookup := catalog.NewService(catalog.NewClient(cfg.APIBaseURL), cfg.CacheTTL)

	cards, err := lookup.Search(context.Background(), desc)

	var card model.Card
	fromLocal := false
	if err != nil || len(cards) == 0 {
		card = pricing.Synthesize(desc)
		fromLocal = true
	} else {
		card = cards[0]
	}

	priced := pricing.Enrich(card, desc.Condition)

	fmt.Printf("%s - %s\n", priced.Name, formatSetLine(priced.Set, priced.Number))
	if priced.Rarity != "" {
		fmt.Printf("Rarity:    %s\n", priced.Rarity)
	}
	fmt.Printf("Condition: %s\n", priced.SelectedCondition)
	fmt.Printf("Estimate:  $%.2f\n", priced.AdjustedPrice)
	fmt.Printf("Breakdown: %s\n", priced.PriceBreakdown)
	if fromLocal {
		fmt.Println("Note: no catalog match; estimate derived from card details.")
	}
	return nil
}

func formatSetLine(set, number string) string {
	if number == "" {
		return set
	}
	return fmt.Sprintf("%s #%s", set, number)
}
