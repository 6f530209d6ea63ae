package awards

import "testing"

func TestLookup(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
		year  int
		want  int
		found bool
	}{
		{name: "record holder", title: "Sinners", year: 2025, want: 16, found: true},
		{name: "case-insensitive", title: "avatar: fire and ash", year: 2025, want: 2, found: true},
		{name: "alternate title", title: "F1: The Movie", year: 2025, want: 4, found: true},
		{name: "single nomination", title: "Weapons", year: 2025, want: 1, found: true},
		{name: "wrong year", title: "Sinners", year: 2024, found: false},
		{name: "unknown title", title: "Comet", year: 2025, found: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			o, ok := Lookup(tc.title, tc.year)
			if ok != tc.found {
				t.Fatalf("Lookup(%q, %d) found = %v, want %v", tc.title, tc.year, ok, tc.found)
			}
			if ok && o.Nominations != tc.want {
				t.Fatalf("Lookup(%q, %d) nominations = %d, want %d", tc.title, tc.year, o.Nominations, tc.want)
			}
		})
	}
}
