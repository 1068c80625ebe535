package images

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ResolveBatch resolves catalog images for many artists. Names are
// processed in batches that run concurrently, with a pause between
// batches. Names without a catalog image are absent from the result.
func (r *Resolver) ResolveBatch(ctx context.Context, names []string) (map[string]string, error) {
	names = lo.Compact(lo.Uniq(names))
	results := make(map[string]string, len(names))
	if len(names) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	batches := lo.Chunk(names, r.batchSize)
	for i, batch := range batches {
		if i > 0 {
			if err := r.sleep(ctx, r.batchDelay); err != nil {
				return results, err
			}
		}

		r.logger.Debug().
			Int("batch", i+1).
			Int("batches", len(batches)).
			Int("size", len(batch)).
			Msg("Resolving image batch")

		var g errgroup.Group
		for _, name := range batch {
			g.Go(func() error {
				url := r.resolveCatalogOnly(ctx, name)
				if url == "" {
					return nil
				}
				mu.Lock()
				results[name] = url
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	r.logger.Debug().Int("requested", len(names)).Int("resolved", len(results)).Msg("Image batch complete")
	return results, nil
}

func (r *Resolver) resolveCatalogOnly(ctx context.Context, name string) string {
	req := Request{Type: Artist, Name: name}

	var corrected string
	if r.corrector != nil {
		corrected, _ = r.corrector.Lookup(name)
	}
	if e, ok := r.cache.get(cacheKey{typ: Artist, name: name}); ok && e.source == SourceCatalog {
		return e.url
	}
	if corrected != "" && corrected != name {
		if e, ok := r.cache.get(cacheKey{typ: Artist, name: corrected}); ok && e.source == SourceCatalog {
			return e.url
		}
	}
	return r.searchCatalog(ctx, req, corrected)
}
