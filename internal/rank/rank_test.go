package rank

import (
	"testing"

	"github.com/jobscout/jobscout/internal/model"
)

func dated(link, publishedAt string) model.MatchedPosting {
	return model.MatchedPosting{Posting: model.Posting{Link: link, PublishedAt: publishedAt}}
}

func located(link, location string) model.MatchedPosting {
	return model.MatchedPosting{Posting: model.Posting{Link: link, Location: location}}
}

func links(postings []model.MatchedPosting) []string {
	out := make([]string, len(postings))
	for i, p := range postings {
		out[i] = p.Link
	}
	return out
}

func assertOrder(t *testing.T, got []model.MatchedPosting, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d postings, want %d", len(got), len(want))
	}
	for i, link := range links(got) {
		if link != want[i] {
			t.Errorf("position %d = %q, want %q (full order %v)", i, link, want[i], links(got))
			return
		}
	}
}

func TestSortByPreference_PublishedAtDescending(t *testing.T) {
	postings := []model.MatchedPosting{
		dated("a", "2024-01-01T00:00:00Z"),
		dated("b", "not-a-date"),
		dated("c", "2024-03-01T00:00:00Z"),
	}

	got := SortByPreference(postings, "published at", nil)
	assertOrder(t, got, []string{"c", "a", "b"})
}

func TestSortByPreference_PublishedAtStableForEqualDates(t *testing.T) {
	postings := []model.MatchedPosting{
		dated("first", "2024-01-01T00:00:00Z"),
		dated("second", "2024-01-01T00:00:00Z"),
		dated("third", ""),
		dated("fourth", "garbage"),
	}

	got := SortByPreference(postings, "Published At", nil)
	assertOrder(t, got, []string{"first", "second", "third", "fourth"})
}

func TestSortByPreference_PublishedAtAcceptsBareDates(t *testing.T) {
	postings := []model.MatchedPosting{
		dated("old", "2023-06-15"),
		dated("new", "2024-02-20T09:30:00"),
	}

	got := SortByPreference(postings, "published at", nil)
	assertOrder(t, got, []string{"new", "old"})
}

func TestSortByPreference_LocationPreferenceIndex(t *testing.T) {
	postings := []model.MatchedPosting{
		located("nowhere", "Oslo, Norway"),
		located("remote", "Remote, Worldwide"),
		located("berlin", "Berlin, Germany"),
	}

	got := SortByPreference(postings, "location", []string{"berlin", "remote"})
	assertOrder(t, got, []string{"berlin", "remote", "nowhere"})
}

func TestSortByPreference_TiesPreserveOriginalOrder(t *testing.T) {
	postings := []model.MatchedPosting{
		located("r1", "Remote EU"),
		located("x1", "Lisbon"),
		located("r2", "Remote US"),
		located("x2", "Madrid"),
	}

	got := SortByPreference(postings, "location", []string{"remote"})
	assertOrder(t, got, []string{"r1", "r2", "x1", "x2"})
}

func TestSortByPreference_KeywordField(t *testing.T) {
	a := model.MatchedPosting{Posting: model.Posting{Link: "a"}, Keyword: "devops"}
	b := model.MatchedPosting{Posting: model.Posting{Link: "b"}, Keyword: "cloud engineer"}

	got := SortByPreference([]model.MatchedPosting{a, b}, "keyword", []string{"cloud"})
	assertOrder(t, got, []string{"b", "a"})
}

func TestSortByPreference_NoPreferencesKeepsOrder(t *testing.T) {
	postings := []model.MatchedPosting{
		located("a", "Berlin"),
		located("b", "Remote"),
	}

	got := SortByPreference(postings, "location", nil)
	assertOrder(t, got, []string{"a", "b"})
}
