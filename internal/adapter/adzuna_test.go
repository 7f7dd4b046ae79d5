package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobscout/jobscout/internal/model"
)

var adzunaTestCountries = map[string]string{"germany": "de", "de": "de"}

func TestAdzunaFetch_PaginatesUntilEmptyPage(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Query().Get("app_id") != "id1" || r.URL.Query().Get("app_key") != "key1" {
			t.Errorf("missing credentials on %s", r.URL)
		}
		if r.URL.Query().Get("results_per_page") != "50" {
			t.Errorf("results_per_page = %q, want 50", r.URL.Query().Get("results_per_page"))
		}

		// Two pages of results, then an empty page.
		if strings.HasSuffix(r.URL.Path, "/3") {
			w.Write([]byte(`{"results": []}`))
			return
		}
		fmt.Fprintf(w, `{"results": [{
			"title": "Platform Engineer",
			"redirect_url": "https://adzuna.example%s",
			"location": {"display_name": "Berlin, Germany"},
			"created": "2024-04-01T00:00:00Z",
			"description": "text"
		}]}`, r.URL.Path)
	}))
	defer srv.Close()

	a := NewAdzunaAdapter(srv.URL, "id1", "key1", adzunaTestCountries, srv.Client(), discardLogger())
	postings, err := a.Fetch(context.Background(), model.Query{
		Keywords:  []string{"engineer"},
		Locations: []string{"germany"},
		Limit:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// germany resolves to de; pages 1, 2 and the empty 3.
	want := []string{"/de/search/1", "/de/search/2", "/de/search/3"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	if len(postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(postings))
	}
	if postings[0].Location != "Berlin, Germany" {
		t.Errorf("Location = %q", postings[0].Location)
	}
}

func TestAdzunaFetch_SkipsUnresolvableLocations(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter(srv.URL, "id", "key", adzunaTestCountries, srv.Client(), discardLogger())
	postings, err := a.Fetch(context.Background(), model.Query{
		Keywords:  []string{"engineer"},
		Locations: []string{"tel aviv", "remote"},
		Limit:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no requests for unresolvable locations, got %d", calls)
	}
	if len(postings) != 0 {
		t.Errorf("expected no postings, got %d", len(postings))
	}
}

func TestAdzunaFetch_PageFailureAbortsOnlyThatLoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First keyword's pages fail, second keyword's first page succeeds
		// then ends.
		if strings.Contains(r.URL.RawQuery, "what=broken") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/1") {
			w.Write([]byte(`{"results": [{"title": "DevOps", "redirect_url": "https://x/1"}]}`))
			return
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	a := NewAdzunaAdapter(srv.URL, "id", "key", adzunaTestCountries, srv.Client(), discardLogger())
	postings, err := a.Fetch(context.Background(), model.Query{
		Keywords:  []string{"broken", "devops"},
		Locations: []string{"germany"},
		Limit:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 1 || postings[0].Description != "DevOps" {
		t.Errorf("expected the second keyword's posting, got %+v", postings)
	}
}
