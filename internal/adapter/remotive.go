package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jobscout/jobscout/internal/model"
)

// remotiveJob represents a single job in the Remotive API response.
type remotiveJob struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Location    string `json:"candidate_required_location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// remotiveResponse is the top-level Remotive search response.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// RemotiveAdapter fetches remote job listings from the Remotive search API,
// one search request per query keyword.
type RemotiveAdapter struct {
	baseURL string
	client  *http.Client
}

// NewRemotiveAdapter creates an adapter for the Remotive remote-jobs API.
func NewRemotiveAdapter(baseURL string, client *http.Client) *RemotiveAdapter {
	return &RemotiveAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

// Fetch issues one search per keyword and normalizes the results. Postings
// collected before a failed request are returned alongside the error.
func (a *RemotiveAdapter) Fetch(ctx context.Context, q model.Query) ([]model.Posting, error) {
	var postings []model.Posting

	for _, kw := range q.Keywords {
		params := url.Values{}
		params.Set("search", kw)
		params.Set("limit", strconv.Itoa(q.Limit))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return postings, fmt.Errorf("remotive search for %q: %w", kw, err)
		}

		resp, err := a.client.Do(req)
		if err != nil {
			return postings, fmt.Errorf("remotive search for %q: %w", kw, err)
		}

		if resp.StatusCode != http.StatusOK {
			retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
			resp.Body.Close()
			return postings, &model.HTTPError{
				StatusCode: resp.StatusCode,
				RetryAfter: retryAfter,
				Err:        fmt.Errorf("remotive search for %q: unexpected status %d", kw, resp.StatusCode),
			}
		}

		var body remotiveResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return postings, fmt.Errorf("remotive search for %q: %w", kw, err)
		}

		for _, job := range body.Jobs {
			postings = append(postings, model.Posting{
				Description:     job.Title,
				Link:            job.URL,
				Location:        job.Location,
				PublishedAt:     job.Date,
				FullDescription: job.Description,
			})
		}
	}

	return postings, nil
}
