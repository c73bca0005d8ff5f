package scrape

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"pitchdeck-scraper/internal/config"
	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/scrape/company"
	"pitchdeck-scraper/internal/scrape/pitch"
	"pitchdeck-scraper/internal/scrape/types"
	"pitchdeck-scraper/internal/store"

	"golang.org/x/sync/errgroup"
)

type Deps struct {
	Cfg      config.Config
	Fetcher  DocumentFetcher
	DB       *sql.DB // nil disables the run archive
	Observer types.Observer
}

// NewFetcherFromConfig builds a Fetcher from the http section of cfg.
func NewFetcherFromConfig(cfg config.Config, opts ...FetcherOption) *Fetcher {
	return NewFetcher(FetcherConfig{
		BaseURL:      cfg.HTTP.BaseURL,
		Timeout:      cfg.HTTP.Timeout,
		UserAgent:    cfg.HTTP.UserAgent,
		StrictStatus: cfg.HTTP.StrictStatus,
		DumpDir:      cfg.HTTP.DumpDir,
	}, opts...)
}

// RunOperation runs the pipelines of op, exports each to its configured
// output and archives the result. For OpAll both pipelines run concurrently
// and the first failure cancels the other.
func RunOperation(ctx context.Context, d Deps, op Operation) ([]domain.Run, error) {
	if _, err := ParseOperation(string(op)); err != nil {
		return nil, err
	}
	if d.Observer == nil {
		d.Observer = LogObserver{}
	}

	switch op {
	case OpCompanies:
		r, err := runCompanies(ctx, d)
		if err != nil {
			return nil, err
		}
		return []domain.Run{r}, nil
	case OpPitches:
		r, err := runPitches(ctx, d)
		if err != nil {
			return nil, err
		}
		return []domain.Run{r}, nil
	}

	runs := make([]domain.Run, 2)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := runCompanies(gctx, d)
		runs[0] = r
		return err
	})
	g.Go(func() error {
		r, err := runPitches(gctx, d)
		runs[1] = r
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func runCompanies(ctx context.Context, d Deps) (domain.Run, error) {
	pc := d.Cfg.Pipelines.Companies
	p := Pipeline[domain.CompanyRecord]{
		IndexPath:     pc.IndexPath,
		LinksSelector: d.Cfg.Pipelines.LinksSelector,
		Assembler: company.New(company.Selectors{
			Name:        pc.Selectors.Name,
			Description: pc.Selectors.Description,
			Logo:        pc.Selectors.Logo,
		}),
		Observer: d.Observer,
	}
	return runAndExport(ctx, d, p, pc.Output)
}

func runPitches(ctx context.Context, d Deps) (domain.Run, error) {
	pp := d.Cfg.Pipelines.Pitches
	p := Pipeline[domain.PitchRecord]{
		IndexPath:     pp.IndexPath,
		LinksSelector: d.Cfg.Pipelines.LinksSelector,
		Assembler: pitch.New(pitch.Selectors{
			Name:     pp.Selectors.Name,
			Hashtags: pp.Selectors.Hashtags,
		}),
		Observer: d.Observer,
	}
	return runAndExport(ctx, d, p, pp.Output)
}

func runAndExport[T any](ctx context.Context, d Deps, p Pipeline[T], output string) (domain.Run, error) {
	name := p.Assembler.Name()
	started := time.Now().UTC()

	records, err := p.Run(ctx, d.Fetcher)
	if err != nil {
		return domain.Run{}, err
	}
	if err := Export(output, records); err != nil {
		return domain.Run{}, fmt.Errorf("%s: export: %w", name, err)
	}
	d.Observer.Exported(name, output, len(records))

	run := domain.Run{
		Operation:   name,
		StartedAt:   started,
		FinishedAt:  time.Now().UTC(),
		OutputPath:  output,
		RecordCount: len(records),
	}
	if d.DB == nil {
		return run, nil
	}

	archived, err := store.RecordRun(ctx, d.DB, run, records)
	if err != nil {
		// export succeeded; archive failures are logged only
		slog.Warn(fmt.Sprintf("[scrape:%s] archive failed", name), "err", err)
		return run, nil
	}
	return archived, nil
}
