package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jobscout/jobscout/internal/model"
)

// Literal markers delimiting the two configuration fragments embedded in the
// Airtable embed page: the pre-signed API URL and the per-session auth
// headers.
const (
	apiURLStartMarker = "urlWithParams: "
	apiURLEndMarker   = "earlyPrefetchSpan:"
	authStartMarker   = "var headers = "
	authEndMarker     = "headers['x-time-zone'] "
)

// Fallback when a row's location IDs resolve to no known city.
const fallbackCity = "Israel"

// Human column names projected out of the tabular payload.
const (
	colJobTitle     = "Job Title"
	colPositionLink = "Position Link"
	colCompany      = "Company"
	colLocation     = "Location"
	colDescription  = "Job Description"
)

// airtableResponse is the tabular payload returned by the read API.
type airtableResponse struct {
	Data struct {
		Table struct {
			Columns []airtableColumn `json:"columns"`
			Rows    []airtableRow    `json:"rows"`
		} `json:"table"`
	} `json:"data"`
}

type airtableColumn struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type airtableRow struct {
	ID          string                     `json:"id"`
	CreatedTime string                     `json:"createdTime"`
	CellValues  map[string]json.RawMessage `json:"cellValuesByColumnId"`
}

// richTextFragment is one piece of a list-valued description cell.
type richTextFragment struct {
	Text string `json:"text"`
}

// AirtableAdapter fetches the curated Israeli job board backed by an
// Airtable embed. Querying it requires a two-legged handshake: scrape the
// pre-signed read URL and the session auth headers out of the embed page,
// then issue the authenticated data request.
type AirtableAdapter struct {
	embedURL    string
	baseHeaders map[string]string
	idToCity    map[string]string // Airtable select-option ID → city name
	client      *http.Client
	logger      *slog.Logger
}

// NewAirtableAdapter creates an adapter for the Airtable-backed job board.
// cities maps city names to their Airtable select-option IDs; rows are kept
// only when their location IDs intersect this table.
func NewAirtableAdapter(embedURL string, baseHeaders map[string]string, cities map[string][]string, client *http.Client, logger *slog.Logger) *AirtableAdapter {
	idToCity := make(map[string]string)
	for city, ids := range cities {
		for _, id := range ids {
			idToCity[id] = city
		}
	}
	return &AirtableAdapter{
		embedURL:    embedURL,
		baseHeaders: baseHeaders,
		idToCity:    idToCity,
		client:      client,
		logger:      logger,
	}
}

// Fetch performs the handshake and normalizes the tabular payload.
func (a *AirtableAdapter) Fetch(ctx context.Context, q model.Query) ([]model.Posting, error) {
	// Cookies set by the embed page must accompany the data request, so
	// both legs share one session client.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("airtable session: %w", err)
	}
	session := &http.Client{
		Transport: a.client.Transport,
		Timeout:   a.client.Timeout,
		Jar:       jar,
	}

	dataURL, headers, err := a.handshake(ctx, session)
	if err != nil {
		return nil, err
	}

	table, err := a.fetchTable(ctx, session, dataURL, headers)
	if err != nil {
		return nil, err
	}

	return a.normalizeRows(table), nil
}

// handshake fetches the embed page and extracts the pre-signed read URL and
// the per-session auth headers from the literal-delimited script fragments.
func (a *AirtableAdapter) handshake(ctx context.Context, session *http.Client) (string, map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.embedURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("airtable handshake: %w", err)
	}
	for k, v := range a.baseHeaders {
		req.Header.Set(k, v)
	}

	resp, err := session.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("airtable handshake: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("airtable handshake: unexpected status %d", resp.StatusCode),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("airtable handshake: parsing embed page: %w", err)
	}

	urlFragment, err := scriptFragment(doc, apiURLStartMarker, apiURLEndMarker)
	if err != nil {
		return "", nil, fmt.Errorf("airtable handshake: %w", err)
	}
	dataURL, err := a.buildDataURL(urlFragment)
	if err != nil {
		return "", nil, fmt.Errorf("airtable handshake: %w", err)
	}

	authFragment, err := scriptFragment(doc, authStartMarker, authEndMarker)
	if err != nil {
		return "", nil, fmt.Errorf("airtable handshake: %w", err)
	}
	// The fragment is the headers object literal with a trailing semicolon.
	authFragment = strings.TrimSpace(authFragment)
	if len(authFragment) > 0 {
		authFragment = authFragment[:len(authFragment)-1]
	}

	var auth map[string]string
	if err := json.Unmarshal([]byte(authFragment), &auth); err != nil {
		return "", nil, fmt.Errorf("airtable handshake: parsing auth headers: %w", err)
	}

	headers := make(map[string]string, len(a.baseHeaders)+2)
	for k, v := range a.baseHeaders {
		headers[k] = v
	}
	headers["X-Airtable-Application-Id"] = auth["x-airtable-application-id"]
	headers["X-Airtable-Page-Load-Id"] = auth["x-airtable-page-load-id"]

	return dataURL, headers, nil
}

// buildDataURL undoes the transport escaping of the embedded URL fragment
// and roots it at the embed page's origin.
func (a *AirtableAdapter) buildDataURL(fragment string) (string, error) {
	cleaned := strings.TrimSpace(fragment)
	cleaned = strings.ReplaceAll(cleaned, "u002F", "")
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	cleaned = strings.ReplaceAll(cleaned, `\`, "/")
	if len(cleaned) > 0 {
		// Trailing comma from the object literal.
		cleaned = cleaned[:len(cleaned)-1]
	}

	origin, err := url.Parse(a.embedURL)
	if err != nil {
		return "", fmt.Errorf("parsing embed URL: %w", err)
	}
	return origin.Scheme + "://" + origin.Host + cleaned, nil
}

// scriptFragment finds the script element containing the start marker and
// returns the text between the start marker and the last occurrence of the
// end marker.
func scriptFragment(doc *goquery.Document, start, end string) (string, error) {
	var text string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), start) {
			text = s.Text()
			return false
		}
		return true
	})
	if text == "" {
		return "", fmt.Errorf("marker %q not found in embed page", start)
	}

	i := strings.Index(text, start)
	j := strings.LastIndex(text, end)
	if j <= i {
		return "", fmt.Errorf("end marker %q not found after %q", end, start)
	}
	return text[i+len(start) : j], nil
}

func (a *AirtableAdapter) fetchTable(ctx context.Context, session *http.Client, dataURL string, headers map[string]string) (*airtableResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("airtable read: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airtable read: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("airtable read: unexpected status %d", resp.StatusCode),
		}
	}

	var body airtableResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("airtable read: %w", err)
	}
	return &body, nil
}

// normalizeRows maps opaque column IDs to the projected columns, keeps rows
// located in a known city, and reshapes each into a Posting.
func (a *AirtableAdapter) normalizeRows(table *airtableResponse) []model.Posting {
	columnID := make(map[string]string, len(table.Data.Table.Columns))
	for _, col := range table.Data.Table.Columns {
		columnID[col.Name] = col.ID
	}

	locID, ok := columnID[colLocation]
	if !ok {
		a.logger.Warn("airtable: table has no location column, skipping all rows")
		return nil
	}

	var postings []model.Posting
	for _, row := range table.Data.Table.Rows {
		var locationIDs []string
		if err := json.Unmarshal(row.CellValues[locID], &locationIDs); err != nil {
			continue
		}
		if !a.knownCity(locationIDs) {
			continue
		}

		city := fallbackCity
		for _, id := range locationIDs {
			if name, ok := a.idToCity[id]; ok {
				city = name
				break
			}
		}

		title := cellString(row.CellValues[columnID[colJobTitle]])
		company := cellString(row.CellValues[columnID[colCompany]])
		link := cellString(row.CellValues[columnID[colPositionLink]])
		description := cellText(row.CellValues[columnID[colDescription]])

		if strings.TrimSpace(description) == "" {
			a.logger.Warn("airtable: empty description", "title", title, "company", company)
		}

		postings = append(postings, model.Posting{
			Description:     strings.TrimSpace(fmt.Sprintf("%s at %s", title, company)),
			Link:            link,
			Location:        city,
			PublishedAt:     row.CreatedTime,
			FullDescription: description,
		})
	}

	return postings
}

// knownCity reports whether any location ID belongs to the curated table.
func (a *AirtableAdapter) knownCity(ids []string) bool {
	for _, id := range ids {
		if _, ok := a.idToCity[id]; ok {
			return true
		}
	}
	return false
}

// cellString decodes a plain string cell; anything else yields "".
func cellString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// cellText decodes a description cell, which is either a plain string or a
// list of rich-text fragments joined into one string.
func cellText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var fragments []richTextFragment
	if err := json.Unmarshal(raw, &fragments); err == nil {
		parts := make([]string, 0, len(fragments))
		for _, f := range fragments {
			parts = append(parts, f.Text)
		}
		return strings.Join(parts, " ")
	}

	return cellString(raw)
}
