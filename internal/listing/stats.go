package listing

import (
	"context"
	"time"

	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/identity"
)

// BundleStats aggregates publication state for one content type.
type BundleStats struct {
	Published int `json:"published"`
	Draft     int `json:"draft"`
	Recent    int `json:"recent"`
}

// Stats is the cached site-wide aggregate snapshot.
type Stats struct {
	Content     map[string]BundleStats `json:"content"`
	Users       int                    `json:"users"`
	Languages   map[string]int         `json:"languages"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Stats computes per-bundle publication counts, active user totals, and
// per-language published content counts. Recent counts content created
// inside the trailing thirty days.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	key := identity.CacheKey("stats")
	if cached, ok := s.statsCache.Get(key); ok {
		return cached, nil
	}

	bundles, err := s.store.Bundles(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	recentSince := now.Add(-recentWindow).Unix()

	stats := &Stats{
		Content:     make(map[string]BundleStats, len(bundles)),
		Languages:   map[string]int{},
		GeneratedAt: now.UTC(),
	}

	for _, bundle := range bundles {
		published, err := s.countNodes(ctx, func(q entity.Query) {
			q.Condition("type", bundle.ID).Condition("status", true)
		})
		if err != nil {
			return nil, err
		}
		draft, err := s.countNodes(ctx, func(q entity.Query) {
			q.Condition("type", bundle.ID).Condition("status", false)
		})
		if err != nil {
			return nil, err
		}
		recent, err := s.countNodes(ctx, func(q entity.Query) {
			q.Condition("type", bundle.ID).
				Condition("status", true).
				Condition("created", recentSince, entity.OpGreater)
		})
		if err != nil {
			return nil, err
		}
		stats.Content[bundle.ID] = BundleStats{Published: published, Draft: draft, Recent: recent}
	}

	users, err := s.store.CountUsers(ctx, true)
	if err != nil {
		return nil, err
	}
	stats.Users = users

	languages, err := s.store.Languages(ctx)
	if err != nil {
		return nil, err
	}
	for _, lang := range languages {
		count, err := s.countNodes(ctx, func(q entity.Query) {
			q.Condition("langcode", lang.Code).Condition("status", true)
		})
		if err != nil {
			return nil, err
		}
		stats.Languages[lang.Code] = count
	}

	s.statsCache.Set(key, stats)
	return stats, nil
}

func (s *Service) countNodes(ctx context.Context, build func(entity.Query)) (int, error) {
	q := s.store.Query(entity.KindNode)
	build(q)
	return q.Count(ctx)
}
