package imagecheck

import "testing"

func TestIsImage(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want bool
	}{
		{"png", "https://images.example.com/cover.png", true},
		{"jpg", "https://images.example.com/cover.jpg", true},
		{"jpeg with query", "https://images.example.com/cover.jpeg?w=400", true},
		{"webp", "https://cdn.example.com/a/b/c.webp", true},
		{"uppercase extension", "https://images.example.com/COVER.PNG", true},
		{"surrounding whitespace", "  https://images.example.com/cover.gif  ", true},
		{"html page", "https://example.com/page.html", false},
		{"no extension", "https://example.com/cover", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"no scheme", "images.example.com/cover.png", false},
		{"no host", "https:///cover.png", false},
		{"not a url", "::not a url::", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsImage(tc.url); got != tc.want {
				t.Fatalf("IsImage(%q) = %v, want %v", tc.url, got, tc.want)
			}
		})
	}
}
