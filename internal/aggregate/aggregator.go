// Package aggregate selects the job sources relevant to a query and runs
// them concurrently, merging their output into one raw posting pool.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jobscout/jobscout/internal/model"
)

// The open feed is country-specific; it only runs when this location token
// is present among the non-city locations.
const arbeitnowHomeCountry = "germany"

// Source pairs a fetcher with the name used in diagnostics.
type Source struct {
	Name    string
	Fetcher model.SourceFetcher
}

// Aggregator fans a query out to the adapters its locations call for. Each
// adapter is an isolated failure domain: its error is collected as a
// diagnostic and never stops a sibling or discards postings already fetched.
type Aggregator struct {
	airtable  model.SourceFetcher
	remotive  model.SourceFetcher
	adzuna    model.SourceFetcher
	remoteOK  model.SourceFetcher
	arbeitnow model.SourceFetcher
	cities    map[string][]string
	logger    *slog.Logger
}

// New creates an Aggregator. Any fetcher may be nil (source disabled); the
// cities table decides which locations count as known local cities.
func New(airtable, remotive, adzuna, remoteOK, arbeitnow model.SourceFetcher, cities map[string][]string, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		airtable:  airtable,
		remotive:  remotive,
		adzuna:    adzuna,
		remoteOK:  remoteOK,
		arbeitnow: arbeitnow,
		cities:    cities,
		logger:    logger,
	}
}

// Run fetches from every selected source concurrently and returns the merged
// pool plus one diagnostic per failed source. The returned slice is owned by
// the caller; no adapter retains a reference to it.
func (a *Aggregator) Run(ctx context.Context, q model.Query) ([]model.Posting, []error) {
	sources := a.selectSources(q)

	var (
		mu    sync.Mutex
		pool  []model.Posting
		diags []error
		wg    sync.WaitGroup
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			postings, err := src.Fetcher.Fetch(ctx, q)

			mu.Lock()
			defer mu.Unlock()
			pool = append(pool, postings...)
			if err != nil {
				diags = append(diags, fmt.Errorf("%s: %w", src.Name, err))
				a.logger.Error("source fetch failed",
					"source", src.Name,
					"kept", len(postings),
					"error", err,
				)
				return
			}
			a.logger.Debug("source fetch complete", "source", src.Name, "postings", len(postings))
		}(src)
	}
	wg.Wait()

	return pool, diags
}

// selectSources classifies the query's locations as known local cities vs
// everything else and picks the adapter set accordingly.
func (a *Aggregator) selectSources(q model.Query) []Source {
	var cityLocs, otherLocs []string
	for _, loc := range q.Locations {
		if _, ok := a.cities[loc]; ok {
			cityLocs = append(cityLocs, loc)
		} else {
			otherLocs = append(otherLocs, loc)
		}
	}

	var sources []Source
	add := func(name string, f model.SourceFetcher) {
		if f != nil {
			sources = append(sources, Source{Name: name, Fetcher: f})
		}
	}

	if len(cityLocs) > 0 {
		add("airtable", a.airtable)
	}
	if len(otherLocs) > 0 {
		add("adzuna", a.adzuna)
		add("remotive", a.remotive)
		add("remoteok", a.remoteOK)

		for _, loc := range otherLocs {
			if loc == arbeitnowHomeCountry {
				add("arbeitnow", a.arbeitnow)
				break
			}
		}
	}

	return sources
}
