package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"SQL Injection Basics", "sql-injection-basics"},
		{"  Buffer Overflow 101  ", "buffer-overflow-101"},
		{"What's XSS?", "what-s-xss"},
		{"---", ""},
		{"Already-Slugged", "already-slugged"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
