package server

// migrate runs database migrations
func (s *Server) migrate() error {
	migrations := []string{
		migrationCards,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

const migrationCards = `
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    set_name TEXT NOT NULL,
    set_code TEXT NOT NULL,
    number TEXT NOT NULL DEFAULT '',
    rarity TEXT NOT NULL DEFAULT '',
    card_type TEXT NOT NULL DEFAULT '',
    hp TEXT NOT NULL DEFAULT '',
    image_small TEXT NOT NULL DEFAULT '',
    image_large TEXT NOT NULL DEFAULT '',
    price_low DOUBLE PRECISION NOT NULL DEFAULT 0,
    price_mid DOUBLE PRECISION NOT NULL DEFAULT 0,
    price_high DOUBLE PRECISION NOT NULL DEFAULT 0,
    price_market DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(LOWER(name));
`

// seed inserts the demo card set on first start
func (s *Server) seed() error {
	_, err := s.db.Exec(`
		INSERT INTO cards (id, name, set_name, set_code, number, rarity, card_type, hp,
		                   image_small, image_large, price_low, price_mid, price_high, price_market)
		VALUES
		('base1-4',  'Charizard', 'Base Set', 'base1', '4',  'Rare Holo', 'Fire',      '120',
		 'https://images.pokemontcg.io/base1/4.png',  'https://images.pokemontcg.io/base1/4_hires.png',  180.00, 280.00, 420.00, 299.99),
		('base1-2',  'Blastoise', 'Base Set', 'base1', '2',  'Rare Holo', 'Water',     '100',
		 'https://images.pokemontcg.io/base1/2.png',  'https://images.pokemontcg.io/base1/2_hires.png',   95.00, 140.00, 210.00, 149.99),
		('base1-15', 'Venusaur',  'Base Set', 'base1', '15', 'Rare Holo', 'Grass',     '100',
		 'https://images.pokemontcg.io/base1/15.png', 'https://images.pokemontcg.io/base1/15_hires.png',  80.00, 120.00, 180.00, 129.99),
		('base1-58', 'Pikachu',   'Base Set', 'base1', '58', 'Common',    'Lightning', '40',
		 'https://images.pokemontcg.io/base1/58.png', 'https://images.pokemontcg.io/base1/58_hires.png',   3.00,   6.00,  12.00,   5.99)
		ON CONFLICT (id) DO NOTHING`)
	return err
}
