package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jobscout/jobscout/internal/model"
)

// arbeitnowJob represents a single job in the Arbeitnow board response.
// The board carries no long-form description, so FullDescription stays empty
// on the postings it produces.
type arbeitnowJob struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Location    string `json:"location"`
	PublishedAt string `json:"published_at"`
}

// arbeitnowResponse is the top-level Arbeitnow board response.
type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// ArbeitnowAdapter fetches jobs from the Arbeitnow job board, an open
// keyword-independent feed paginated with the same early-stop policy as the
// credentialed sources.
type ArbeitnowAdapter struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewArbeitnowAdapter creates an adapter for the Arbeitnow job board API.
func NewArbeitnowAdapter(baseURL string, client *http.Client, logger *slog.Logger) *ArbeitnowAdapter {
	return &ArbeitnowAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// Fetch crawls board pages sequentially, stopping at the first empty page or
// at the page bound. A failed page is logged and ends the crawl, keeping what
// was already collected.
func (a *ArbeitnowAdapter) Fetch(ctx context.Context, q model.Query) ([]model.Posting, error) {
	var postings []model.Posting

	for page := 1; page <= maxPages; page++ {
		jobs, err := a.fetchPage(ctx, page)
		if err != nil {
			a.logger.Warn("arbeitnow page failed, stopping pagination",
				"page", page,
				"error", err,
			)
			break
		}
		if len(jobs) == 0 {
			break
		}

		for _, job := range jobs {
			postings = append(postings, model.Posting{
				Description: job.Title,
				Link:        job.URL,
				Location:    job.Location,
				PublishedAt: job.PublishedAt,
			})
		}
	}

	return postings, nil
}

func (a *ArbeitnowAdapter) fetchPage(ctx context.Context, page int) ([]arbeitnowJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?page=%d", a.baseURL, page), nil)
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

	var body arbeitnowResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}
