package jobspec

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to keyword
// matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
}

// Tokenize splits text into lowercase keywords in order of appearance,
// skipping stop words. Tech tokens like "c++", "c#" and "node.js" stay
// whole because + # . count as word characters.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".")
		// Short tokens are noise except symbol-bearing ones like "c#".
		if len([]rune(w)) < 3 && !strings.ContainsAny(w, "+#") {
			return
		}
		if w != "" && !stopWords[w] {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// TokenSet tokenizes into a set, the shape the semantic score compares.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range Tokenize(text) {
		set[token] = true
	}
	return set
}

// TopKeywords returns the n most frequent tokens. Ties keep their order
// of first appearance so results are deterministic.
func TopKeywords(text string, n int) []string {
	tokens := Tokenize(text)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var unique []string
	for i, token := range tokens {
		if counts[token] == 0 {
			firstSeen[token] = i
			unique = append(unique, token)
		}
		counts[token]++
	}

	sort.SliceStable(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}
