package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobscout/jobscout/internal/model"
)

func TestRemotiveFetch_OneSearchPerKeyword(t *testing.T) {
	var searches []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		searches = append(searches, r.URL.Query().Get("search"))
		if got := r.URL.Query().Get("limit"); got != "200" {
			t.Errorf("limit = %q, want 200", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jobs": [{
			"title": "%s developer",
			"url": "https://remotive.com/jobs/%s",
			"candidate_required_location": "Worldwide",
			"date": "2024-05-01T00:00:00Z",
			"description": "long form"
		}]}`, r.URL.Query().Get("search"), r.URL.Query().Get("search"))
	}))
	defer srv.Close()

	a := NewRemotiveAdapter(srv.URL, srv.Client())
	postings, err := a.Fetch(context.Background(), model.Query{
		Keywords: []string{"golang", "devops"},
		Limit:    200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(searches) != 2 || searches[0] != "golang" || searches[1] != "devops" {
		t.Errorf("searches = %v, want [golang devops]", searches)
	}
	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}

	p := postings[0]
	if p.Description != "golang developer" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Link != "https://remotive.com/jobs/golang" {
		t.Errorf("Link = %q", p.Link)
	}
	if p.Location != "Worldwide" {
		t.Errorf("Location = %q", p.Location)
	}
	if p.PublishedAt != "2024-05-01T00:00:00Z" {
		t.Errorf("PublishedAt = %q", p.PublishedAt)
	}
	if p.FullDescription != "long form" {
		t.Errorf("FullDescription = %q", p.FullDescription)
	}
}

func TestRemotiveFetch_PartialResultsOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"jobs": [{"title": "first", "url": "https://x/1"}]}`))
	}))
	defer srv.Close()

	a := NewRemotiveAdapter(srv.URL, srv.Client())
	postings, err := a.Fetch(context.Background(), model.Query{
		Keywords: []string{"one", "two"},
		Limit:    10,
	})
	if err == nil {
		t.Fatal("expected error from second search")
	}

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("error = %v, want HTTPError 500", err)
	}
	if len(postings) != 1 || postings[0].Description != "first" {
		t.Errorf("expected the first keyword's posting to survive, got %+v", postings)
	}
}
