package recommend

import (
	"regexp"
	"strings"
)

// listMarkup matches the prefixes chat models put in front of each line:
// a bullet ("-", "*", "•") or a number followed by a separator ("1.", "2)",
// "3 -"). The separator is required after digits so titles that start with a
// number ("10 Things I Hate About You", "2 Fast 2 Furious") survive intact.
var listMarkup = regexp.MustCompile(`^\s*(?:[-*•]\s+|\d+\s*[.)\-]\s*)`)

// cleanGeneratedTitle strips list markup from one line of generated output.
func cleanGeneratedTitle(line string) string {
	s := strings.TrimSpace(line)
	s = listMarkup.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
