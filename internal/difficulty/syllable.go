package difficulty

import "strings"

// EstimateSyllables approximates the syllable count of an English word by
// counting vowel groups, with adjustments for silent trailing "e" and
// consonant-"le" endings. Used as a fallback when the frequency provider
// returns no syllable data. Always returns at least 1 for non-empty input.
func EstimateSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	// Phrases: sum over the individual tokens.
	if strings.ContainsAny(word, " -") {
		total := 0
		for _, part := range strings.FieldsFunc(word, func(r rune) bool {
			return r == ' ' || r == '-'
		}) {
			total += EstimateSyllables(part)
		}
		if total == 0 {
			total = 1
		}
		return total
	}

	isVowel := func(b byte) bool {
		switch b {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			return true
		}
		return false
	}

	count := 0
	prevVowel := false
	for i := 0; i < len(word); i++ {
		v := isVowel(word[i])
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent trailing "e" ("make", "bone"), but not a lone vowel group
	// ("the") and not "-le" after a consonant ("table").
	n := len(word)
	if n > 2 && word[n-1] == 'e' && !isVowel(word[n-2]) && count > 1 {
		if !(word[n-2] == 'l' && !isVowel(word[n-3])) {
			count--
		}
	}

	if count < 1 {
		count = 1
	}
	return count
}
