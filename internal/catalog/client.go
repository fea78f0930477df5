// Package catalog queries the remote card catalog and caches results for a
// short staleness window.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/existflow/cardscout/internal/model"
)

// Client issues read-only queries against the card catalog API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// wireCard matches the catalog's JSON card shape
type wireCard struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Number string   `json:"number"`
	Rarity string   `json:"rarity"`
	Types  []string `json:"types"`
	HP     string   `json:"hp"`
	Set    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"set"`
	Images struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
	TCGPlayer struct {
		Prices map[string]struct {
			Low    float64 `json:"low"`
			Mid    float64 `json:"mid"`
			High   float64 `json:"high"`
			Market float64 `json:"market"`
		} `json:"prices"`
	} `json:"tcgplayer"`
}

// price variants in preference order; the first present wins
var priceVariants = []string{"holofoil", "reverseHolofoil", "normal", "1stEditionHolofoil", "unlimited"}

func (w wireCard) toCard() model.Card {
	c := model.Card{
		ID:      w.ID,
		Name:    w.Name,
		Set:     w.Set.Name,
		SetCode: w.Set.ID,
		Number:  w.Number,
		Rarity:  w.Rarity,
		HP:      w.HP,
	}

	if len(w.Types) > 0 {
		c.Type = w.Types[0]
	}

	c.ImageURL = w.Images.Large
	if c.ImageURL == "" {
		c.ImageURL = w.Images.Small
	}

	for _, variant := range priceVariants {
		if p, ok := w.TCGPlayer.Prices[variant]; ok {
			c.Prices = model.Prices{Low: p.Low, Mid: p.Mid, High: p.High, Market: p.Market}
			break
		}
	}

	return c
}

// SearchCards queries the catalog by exact name with an optional set filter
func (c *Client) SearchCards(ctx context.Context, name, set string) ([]model.Card, error) {
	query := fmt.Sprintf("name:%q", name)
	if set != "" {
		query += fmt.Sprintf(" series.name:%q", set)
	}

	endpoint := c.baseURL + "/cards?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog search failed: %s: %s", resp.Status, string(body))
	}

	var result struct {
		Data []wireCard `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	cards := make([]model.Card, 0, len(result.Data))
	for _, w := range result.Data {
		cards = append(cards, w.toCard())
	}
	return cards, nil
}

// GetCard fetches a single card by catalog id
func (c *Client) GetCard(ctx context.Context, id string) (*model.Card, error) {
	endpoint := c.baseURL + "/cards/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog lookup failed: %s: %s", resp.Status, string(body))
	}

	var result struct {
		Data wireCard `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	card := result.Data.toCard()
	return &card, nil
}
