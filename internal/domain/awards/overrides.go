package awards

import (
	"fmt"
	"strings"
)

// Override pins a nomination count for one (title, year) ahead of what the
// nominations adapter would return. Used when the upstream source lags the
// official announcement.
type Override struct {
	Title       string
	Year        int
	Nominations int
	Note        string
}

// 98th Academy Awards nominations for 2025 films, entered from the official
// announcement.
var overrides = []Override{
	{Title: "One Battle After Another", Year: 2025, Nominations: 13, Note: "13 nominations at 98th Academy Awards"},
	{Title: "It Was Just An Accident", Year: 2025, Nominations: 2, Note: "2 nominations at 98th Academy Awards"},
	{Title: "Avatar: Fire and Ash", Year: 2025, Nominations: 2, Note: "2 nominations at 98th Academy Awards"},
	{Title: "Hamnet", Year: 2025, Nominations: 6, Note: "6 nominations at 98th Academy Awards"},
	{Title: "Sinners", Year: 2025, Nominations: 16, Note: "record 16 nominations at 98th Academy Awards"},
	{Title: "F1", Year: 2025, Nominations: 4, Note: "4 nominations at 98th Academy Awards"},
	{Title: "F1: The Movie", Year: 2025, Nominations: 4, Note: "4 nominations at 98th Academy Awards (alternate title)"},
	{Title: "Marty Supreme", Year: 2025, Nominations: 6, Note: "6 nominations at 98th Academy Awards"},
	{Title: "Sentimental Value", Year: 2025, Nominations: 7, Note: "7 nominations at 98th Academy Awards"},
	{Title: "Jurassic World Rebirth", Year: 2025, Nominations: 1, Note: "1 nomination at 98th Academy Awards"},
	{Title: "Weapons", Year: 2025, Nominations: 1, Note: "1 nomination at 98th Academy Awards"},
}

var overrideIndex = func() map[string]Override {
	idx := make(map[string]Override, len(overrides))
	for _, o := range overrides {
		idx[overrideKey(o.Title, o.Year)] = o
	}
	return idx
}()

// Lookup returns the override for (title, year) when one exists. Title
// matching is case-insensitive.
func Lookup(title string, year int) (Override, bool) {
	o, ok := overrideIndex[overrideKey(title, year)]
	return o, ok
}

func overrideKey(title string, year int) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(title)), year)
}
