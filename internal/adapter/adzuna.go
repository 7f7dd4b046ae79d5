package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jobscout/jobscout/internal/model"
)

// adzunaJob represents a single result in the Adzuna search response.
type adzunaJob struct {
	Title       string         `json:"title"`
	RedirectURL string         `json:"redirect_url"`
	Location    adzunaLocation `json:"location"`
	Created     string         `json:"created"`
	Description string         `json:"description"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// adzunaResponse is the top-level Adzuna search response.
type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

// AdzunaAdapter fetches jobs from the Adzuna search API. For every
// keyword × location pair whose location resolves to a known country code it
// crawls result pages sequentially, stopping at the first empty page or at
// the page bound. A failed page request aborts only that pagination loop.
type AdzunaAdapter struct {
	baseURL   string
	appID     string
	appKey    string
	countries map[string]string
	client    *http.Client
	logger    *slog.Logger
}

// NewAdzunaAdapter creates an adapter for the Adzuna jobs API. The countries
// table maps normalized location names to the ISO codes Adzuna scopes its
// URL paths by.
func NewAdzunaAdapter(baseURL, appID, appKey string, countries map[string]string, client *http.Client, logger *slog.Logger) *AdzunaAdapter {
	return &AdzunaAdapter{
		baseURL:   baseURL,
		appID:     appID,
		appKey:    appKey,
		countries: countries,
		client:    client,
		logger:    logger,
	}
}

// Fetch crawls every keyword × resolvable-location pair. Page-level failures
// are logged and end that loop only; the remaining pairs still run.
func (a *AdzunaAdapter) Fetch(ctx context.Context, q model.Query) ([]model.Posting, error) {
	var postings []model.Posting

	for _, kw := range q.Keywords {
		for _, loc := range q.Locations {
			code, ok := a.countries[loc]
			if !ok {
				continue
			}
			postings = append(postings, a.fetchPages(ctx, kw, loc, code)...)
		}
		if ctx.Err() != nil {
			return postings, ctx.Err()
		}
	}

	return postings, nil
}

func (a *AdzunaAdapter) fetchPages(ctx context.Context, keyword, location, countryCode string) []model.Posting {
	var postings []model.Posting

	for page := 1; page <= maxPages; page++ {
		results, err := a.fetchPage(ctx, keyword, location, countryCode, page)
		if err != nil {
			a.logger.Warn("adzuna page failed, stopping pagination",
				"keyword", keyword,
				"location", location,
				"page", page,
				"error", err,
			)
			break
		}
		if len(results) == 0 {
			break
		}

		for _, job := range results {
			postings = append(postings, model.Posting{
				Description:     job.Title,
				Link:            job.RedirectURL,
				Location:        job.Location.DisplayName,
				PublishedAt:     job.Created,
				FullDescription: job.Description,
			})
		}
	}

	return postings
}

func (a *AdzunaAdapter) fetchPage(ctx context.Context, keyword, location, countryCode string, page int) ([]adzunaJob, error) {
	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("what", keyword)
	params.Set("where", location)
	params.Set("results_per_page", strconv.Itoa(pageSize))

	pageURL := fmt.Sprintf("%s/%s/search/%d?%s", a.baseURL, countryCode, page, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var body adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Results, nil
}
