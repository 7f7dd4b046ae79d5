package query

import (
	"reflect"
	"testing"

	"github.com/jobscout/jobscout/internal/model"
)

var testCountries = map[string]string{
	"germany": "de", "de": "de", "deutschland": "de",
	"usa": "us", "us": "us",
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   model.Query
		want model.Query
	}{
		{
			name: "lowercases and trims keywords",
			in: model.Query{
				Keywords:          []string{"  Cloud Engineer ", "DEVOPS"},
				SecondaryKeywords: []string{" Senior "},
				Limit:             100,
			},
			want: model.Query{
				Keywords:          []string{"cloud engineer", "devops"},
				SecondaryKeywords: []string{"senior"},
				Locations:         []string{},
				Limit:             100,
			},
		},
		{
			name: "expands country aliases into ISO codes",
			in:   model.Query{Locations: []string{"Germany", "USA"}},
			want: model.Query{
				Keywords:          []string{},
				SecondaryKeywords: []string{},
				Locations:         []string{"germany", "usa", "de", "us"},
			},
		},
		{
			name: "does not duplicate a code already present",
			in:   model.Query{Locations: []string{"de", "Germany", "Deutschland"}},
			want: model.Query{
				Keywords:          []string{},
				SecondaryKeywords: []string{},
				Locations:         []string{"de", "germany", "deutschland"},
			},
		},
		{
			name: "unknown locations pass through",
			in:   model.Query{Locations: []string{"Atlantis"}},
			want: model.Query{
				Keywords:          []string{},
				SecondaryKeywords: []string{},
				Locations:         []string{"atlantis"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, testCountries)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFingerprint_StableAcrossInputQuirks(t *testing.T) {
	q1 := Normalize(model.Query{
		Keywords:  []string{"  Cloud Engineer ", "DevOps"},
		Locations: []string{"Germany"},
		Limit:     50,
	}, testCountries)
	q2 := Normalize(model.Query{
		Keywords:  []string{"devops", "cloud engineer"},
		Locations: []string{"germany "},
		Limit:     50,
	}, testCountries)

	if Fingerprint(q1) != Fingerprint(q2) {
		t.Errorf("fingerprints differ for equivalent queries: %s vs %s", Fingerprint(q1), Fingerprint(q2))
	}
}

func TestFingerprint_DiffersForDifferentQueries(t *testing.T) {
	base := model.Query{Keywords: []string{"golang"}, Locations: []string{"us"}, Limit: 50}

	variants := []model.Query{
		{Keywords: []string{"python"}, Locations: []string{"us"}, Limit: 50},
		{Keywords: []string{"golang"}, Locations: []string{"gb"}, Limit: 50},
		{Keywords: []string{"golang"}, Locations: []string{"us"}, Limit: 100},
		{SecondaryKeywords: []string{"golang"}, Locations: []string{"us"}, Limit: 50},
	}
	for i, v := range variants {
		if Fingerprint(base) == Fingerprint(v) {
			t.Errorf("variant %d: fingerprint collides with base", i)
		}
	}
}
