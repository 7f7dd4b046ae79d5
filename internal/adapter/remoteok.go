package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jobscout/jobscout/internal/model"
)

// remoteOKJob represents one listing element in the RemoteOK feed. The feed
// carries no location field, so Location stays empty on its postings.
type remoteOKJob struct {
	Position    string `json:"position"`
	URL         string `json:"url"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// RemoteOKAdapter fetches the RemoteOK feed in a single request. The feed is
// a JSON array whose first element is legal/metadata and must be skipped.
type RemoteOKAdapter struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewRemoteOKAdapter creates an adapter for the RemoteOK feed.
func NewRemoteOKAdapter(baseURL string, client *http.Client, logger *slog.Logger) *RemoteOKAdapter {
	return &RemoteOKAdapter{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// Fetch retrieves the feed once and normalizes every listing after the
// metadata element. Malformed elements are skipped, not fatal.
func (a *RemoteOKAdapter) Fetch(ctx context.Context, q model.Query) ([]model.Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	// The feed rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("remoteok fetch: unexpected status %d", resp.StatusCode),
		}
	}

	var elements []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&elements); err != nil {
		return nil, fmt.Errorf("remoteok fetch: %w", err)
	}
	if len(elements) == 0 {
		return nil, nil
	}

	postings := make([]model.Posting, 0, len(elements)-1)
	for i, raw := range elements[1:] {
		var job remoteOKJob
		if err := json.Unmarshal(raw, &job); err != nil {
			a.logger.Warn("remoteok: skipping malformed listing", "index", i+1, "error", err)
			continue
		}
		postings = append(postings, model.Posting{
			Description:     job.Position,
			Link:            job.URL,
			PublishedAt:     job.Date,
			FullDescription: job.Description,
		})
	}

	return postings, nil
}
