package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/giygas/medic-api/interfaces"
	"github.com/giygas/medic-api/medicineparser/entities"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

var _ interfaces.Searcher = (*Searcher)(nil)

const (
	searchKindList    = "list"
	searchKindSimilar = "similar"
)

// Searcher merges medicine names from FDA and RxNav
type Searcher struct {
	labels interfaces.LabelSource
	rxnav  interfaces.ConceptSource
	cache  *cache.Cache
}

// NewSearcher memoizes results for ttl; a zero ttl disables the cache
func NewSearcher(labels interfaces.LabelSource, rxnav interfaces.ConceptSource, ttl time.Duration) *Searcher {
	s := &Searcher{labels: labels, rxnav: rxnav}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// List returns up to limit names: FDA brand (or generic) names first, then
// RxNav concept names
func (s *Searcher) List(ctx context.Context, query string, limit int) ([]string, error) {
	return s.search(ctx, searchKindList, query, limit, func(ctx context.Context) []string {
		return labelNames(s.labels.LabelsByBrand(ctx, query, limit))
	})
}

// Similar returns up to limit names related to query as brand or generic name
func (s *Searcher) Similar(ctx context.Context, query string, limit int) ([]string, error) {
	return s.search(ctx, searchKindSimilar, query, limit, func(ctx context.Context) []string {
		return allBrandNames(s.labels.LabelsByBrandOrGeneric(ctx, query, limit))
	})
}

func (s *Searcher) search(ctx context.Context, kind, query string, limit int, fda func(context.Context) []string) ([]string, error) {
	key := fmt.Sprintf("%s:%s:%d", kind, entities.NameKey(query), limit)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached.([]string), nil
		}
	}

	var fdaNames, rxnavNames []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fdaNames = fda(gctx)
		return nil
	})
	g.Go(func() error {
		rxnavNames = s.rxnav.DrugNames(gctx, query, limit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := mergeUnique(limit, fdaNames, rxnavNames)
	if len(names) == 0 {
		return nil, ErrNotFound
	}

	if s.cache != nil {
		s.cache.SetDefault(key, names)
	}
	return names, nil
}

// labelNames takes each label's first brand name, else its first generic name
func labelNames(labels []entities.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		switch {
		case len(l.OpenFDA.BrandName) > 0 && l.OpenFDA.BrandName[0] != "":
			names = append(names, l.OpenFDA.BrandName[0])
		case len(l.OpenFDA.GenericName) > 0 && l.OpenFDA.GenericName[0] != "":
			names = append(names, l.OpenFDA.GenericName[0])
		}
	}
	return names
}

// allBrandNames flattens every brand name of every label
func allBrandNames(labels []entities.Label) []string {
	var names []string
	for _, l := range labels {
		for _, name := range l.OpenFDA.BrandName {
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// mergeUnique concatenates lists keeping the first occurrence of each name,
// truncated to limit when positive
func mergeUnique(limit int, lists ...[]string) []string {
	seen := make(map[string]struct{})
	merged := make([]string, 0, max(limit, 0))
	for _, list := range lists {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
			if limit > 0 && len(merged) == limit {
				return merged
			}
		}
	}
	return merged
}
