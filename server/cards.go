package server

import (
	"database/sql"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

// Wire shapes matching the public catalog API

type wireSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

type wirePricePoints struct {
	Low    float64 `json:"low"`
	Mid    float64 `json:"mid"`
	High   float64 `json:"high"`
	Market float64 `json:"market"`
}

type wireTCGPlayer struct {
	Prices map[string]wirePricePoints `json:"prices"`
}

type wireCard struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Number    string         `json:"number"`
	Rarity    string         `json:"rarity"`
	Types     []string       `json:"types"`
	HP        string         `json:"hp"`
	Set       wireSet        `json:"set"`
	Images    wireImages     `json:"images"`
	TCGPlayer *wireTCGPlayer `json:"tcgplayer,omitempty"`
}

// Query grammar: name:"Charizard" series.name:"Base Set".
// set.name is accepted as an alias for series.name.
var (
	nameRe = regexp.MustCompile(`name:"([^"]*)"`)
	setRe  = regexp.MustCompile(`(?:series|set)\.name:"([^"]*)"`)
)

func parseQuery(q string) (name, set string) {
	// The set clause also matches the plain name pattern, so strip it first
	if m := setRe.FindStringSubmatch(q); m != nil {
		set = m[1]
		q = setRe.ReplaceAllString(q, "")
	}
	if m := nameRe.FindStringSubmatch(q); m != nil {
		name = m[1]
	}
	return name, set
}

// handleSearchCards handles GET /cards?q=
func (s *Server) handleSearchCards(c echo.Context) error {
	name, set := parseQuery(c.QueryParam("q"))
	if name == "" {
		return c.JSON(http.StatusOK, map[string]interface{}{"data": []wireCard{}})
	}

	query := `
		SELECT id, name, set_name, set_code, number, rarity, card_type, hp,
		       image_small, image_large, price_low, price_mid, price_high, price_market
		FROM cards
		WHERE LOWER(name) = LOWER($1)`
	args := []interface{}{name}
	if set != "" {
		query += ` AND LOWER(set_name) = LOWER($2)`
		args = append(args, set)
	}
	query += ` ORDER BY set_name, number`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	cards := []wireCard{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			c.Logger().Error("scan error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		cards = append(cards, card)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": cards})
}

// handleGetCard handles GET /cards/:id
func (s *Server) handleGetCard(c echo.Context) error {
	row := s.db.QueryRow(`
		SELECT id, name, set_name, set_code, number, rarity, card_type, hp,
		       image_small, image_large, price_low, price_mid, price_high, price_market
		FROM cards WHERE id = $1`, c.Param("id"))

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "card not found"})
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": card})
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanCard(row scannable) (wireCard, error) {
	var (
		card     wireCard
		cardType string
		low      float64
		mid      float64
		high     float64
		market   float64
	)

	err := row.Scan(&card.ID, &card.Name, &card.Set.Name, &card.Set.ID, &card.Number,
		&card.Rarity, &cardType, &card.HP,
		&card.Images.Small, &card.Images.Large,
		&low, &mid, &high, &market)
	if err != nil {
		return wireCard{}, err
	}

	if cardType != "" {
		card.Types = strings.Split(cardType, ",")
	}
	if market > 0 {
		card.TCGPlayer = &wireTCGPlayer{
			Prices: map[string]wirePricePoints{
				"holofoil": {Low: low, Mid: mid, High: high, Market: market},
			},
		}
	}

	return card, nil
}
