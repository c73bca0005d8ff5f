package scrape

import (
	"context"
	"fmt"

	"pitchdeck-scraper/internal/scrape/types"

	"github.com/PuerkitoBio/goquery"
)

// DocumentFetcher is the part of Fetcher a pipeline needs.
type DocumentFetcher interface {
	Fetch(ctx context.Context, path string) (*goquery.Document, error)
}

// Pipeline describes one index page and how to turn its detail pages into
// records of type T.
type Pipeline[T any] struct {
	IndexPath     string
	LinksSelector string
	Assembler     types.Assembler[T]
	Observer      types.Observer
}

// Run fetches the index, discovers detail links and assembles one record per
// link, sequentially and in link order. The first failure aborts the run and
// no records are returned.
func (p Pipeline[T]) Run(ctx context.Context, f DocumentFetcher) ([]T, error) {
	obs := p.Observer
	if obs == nil {
		obs = types.NopObserver{}
	}
	name := p.Assembler.Name()

	index, err := f.Fetch(ctx, p.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch index %s: %w", name, p.IndexPath, err)
	}

	links, err := DiscoverLinks(index, p.LinksSelector)
	if err != nil {
		return nil, fmt.Errorf("%s: discover links: %w", name, err)
	}
	obs.IndexFetched(name, p.IndexPath, len(links))

	records := make([]T, 0, len(links))
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		doc, err := f.Fetch(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("%s: fetch %s: %w", name, link, err)
		}
		rec, err := p.Assembler.Assemble(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: assemble %s: %w", name, link, err)
		}
		records = append(records, rec)
		obs.RecordAssembled(name, i+1, len(links), rec)
	}

	return records, nil
}
