package nlp

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.Vietnamese)

// Fold lower-cases text and strips Vietnamese diacritics: "Đà Nẵng" -> "da nang".
func Fold(text string) string {
	text = strings.ToLower(text)
	text = strings.NewReplacer("đ", "d", "Đ", "d").Replace(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Clean lower-cases text, turns punctuation into spaces and collapses whitespace.
// Arrows become "đến" so "HN → SGN" reads as a route.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = strings.NewReplacer("→", " đến ", "->", " đến ").Replace(text)

	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '/' || r == '.' {
			return r
		}
		return ' '
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

func Title(text string) string {
	return titleCaser.String(strings.TrimSpace(text))
}

// Similarity is 1 for equal strings and falls with edit distance.
func Similarity(a, b string) float64 {
	a, b = Fold(a), Fold(b)
	if a == b {
		return 1.0
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := math.Max(float64(len(ra)), float64(len(rb)))
	if maxLen == 0 {
		return 0.0
	}

	return math.Max(0, 1.0-float64(levenshtein(ra, rb))/maxLen)
}

func levenshtein(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
