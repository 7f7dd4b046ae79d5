package match

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		text   string
		want   bool
	}{
		{
			name:   "two words with one word between",
			phrase: "cloud engineer",
			text:   "we need a cloud devops engineer",
			want:   true,
		},
		{
			name:   "two words adjacent",
			phrase: "cloud engineer",
			text:   "senior cloud engineer wanted",
			want:   true,
		},
		{
			name:   "comma between words rejected",
			phrase: "cloud engineer",
			text:   "cloud, engineer",
			want:   false,
		},
		{
			name:   "order matters",
			phrase: "cloud engineer",
			text:   "engineer cloud",
			want:   false,
		},
		{
			name:   "two intervening words rejected",
			phrase: "cloud engineer",
			text:   "cloud native platform engineer",
			want:   false,
		},
		{
			name:   "single word substring",
			phrase: "golang",
			text:   "experienced Golang developer",
			want:   true,
		},
		{
			name:   "single word absent",
			phrase: "rust",
			text:   "experienced Golang developer",
			want:   false,
		},
		{
			name:   "three word phrase falls back to substring",
			phrase: "senior cloud engineer",
			text:   "hiring a Senior Cloud Engineer today",
			want:   true,
		},
		{
			name:   "three word phrase substring miss",
			phrase: "senior cloud engineer",
			text:   "senior devops cloud engineer",
			want:   false,
		},
		{
			name:   "whitespace collapsed before matching",
			phrase: "cloud engineer",
			text:   "cloud \n\t engineer",
			want:   true,
		},
		{
			name:   "case insensitive",
			phrase: "Cloud Engineer",
			text:   "CLOUD ENGINEER",
			want:   true,
		},
		{
			name:   "word boundary respected",
			phrase: "cloud engineer",
			text:   "cloudy engineering",
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.phrase, tt.text); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.phrase, tt.text, got, tt.want)
			}
		})
	}
}

func TestCompile_ReusableAcrossTexts(t *testing.T) {
	p := Compile("  Cloud Engineer ")
	if p.Text() != "cloud engineer" {
		t.Errorf("Text() = %q, want %q", p.Text(), "cloud engineer")
	}
	if !p.Match("a cloud devops engineer") {
		t.Error("expected match with one intervening word")
	}
	if p.Match("cloud- engineer") {
		t.Error("expected punctuation inside span to reject the match")
	}
}
