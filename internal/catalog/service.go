package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/existflow/cardscout/internal/logger"
	"github.com/existflow/cardscout/internal/model"
)

// Service wraps the catalog client with the result cache and the name
// filtering the workflow expects. Synthesizing a fallback card when nothing
// comes back is the caller's job, not the service's.
type Service struct {
	client *Client
	cache  *resultCache
}

// NewService creates a lookup service with the given staleness window
func NewService(client *Client, ttl time.Duration) *Service {
	return &Service{
		client: client,
		cache:  newResultCache(ttl),
	}
}

func cacheKey(name, set, number string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(set) + "|" + strings.ToLower(number)
}

// Search returns catalog matches for the descriptor. Within the staleness
// window identical descriptors are served from cache without a remote call.
// A transport failure is an error; an empty result set is not.
func (s *Service) Search(ctx context.Context, desc model.CardDescriptor) ([]model.Card, error) {
	key := cacheKey(desc.Name, desc.Set, desc.Number)

	if cards, ok := s.cache.Get(key); ok {
		logger.Debug("Catalog cache hit", logger.F("key", key))
		return cards, nil
	}

	cards, err := s.client.SearchCards(ctx, desc.Name, desc.Set)
	if err != nil {
		logger.Warn("Catalog search failed", logger.F("error", err))
		return nil, err
	}

	// Keep cards whose name contains the query, not just exact matches.
	// When that filters everything out, fall back to the raw result set.
	query := strings.ToLower(desc.Name)
	filtered := make([]model.Card, 0, len(cards))
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Name), query) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		filtered = cards
	}

	if len(filtered) > 0 {
		s.cache.Set(key, filtered)
	}

	logger.Debug("Catalog search",
		logger.F("name", desc.Name),
		logger.F("set", desc.Set),
		logger.F("results", len(filtered)))
	return filtered, nil
}

// ClearCache drops every cached result
func (s *Service) ClearCache() {
	s.cache.Clear()
}
