package recommend

import "testing"

func TestCleanGeneratedTitle(t *testing.T) {
	tests := map[string]string{
		"1. Inception":                  "Inception",
		"2) Dune":                       "Dune",
		"3 - Heat":                      "Heat",
		"- Clueless":                    "Clueless",
		"* The Matrix":                  "The Matrix",
		"• Amélie":                      "Amélie",
		"  4.  Arrival  ":               "Arrival",
		"2. 10 Things I Hate About You": "10 Things I Hate About You",
		"2 Fast 2 Furious":              "2 Fast 2 Furious",
		"1917":                          "1917",
		"Inception":                     "Inception",
		"":                              "",
		"   ":                           "",
	}
	for input, expect := range tests {
		if got := cleanGeneratedTitle(input); got != expect {
			t.Fatalf("cleanGeneratedTitle(%q) = %q, want %q", input, got, expect)
		}
	}
}
