package arabic

import (
	"strings"
	"unicode/utf8"
)

// Stemmer is a light affix stripper: it reduces a word toward its root by
// removing at most one prefix and at most one suffix from fixed tables.
//
// It is a heuristic, not a morphological analyser. The remainder is never
// checked against a dictionary, so a word that merely happens to start with
// "ال" loses those two letters all the same.
//
// The zero value is ready to use.
type Stemmer struct{}

// Stem strips one prefix and then one suffix from word.
//
// ALGORITHM:
// ----------
//  1. Words shorter than 4 code points are returned unchanged.
//  2. The first entry of the prefix table that word starts with is removed.
//  3. The first entry of the suffix table the (possibly shortened) word ends
//     with is removed.
//
// Examples:
//
//	"الكتاب"   → "كتاب"   (ال)
//	"والكتب"   → "كتب"    (وال)
//	"المعلمون" → "معلم"   (ال + ون)
//	"مدرسة"    → "مدرس"   (ة)
//	"كتب"      → "كتب"    (too short)
//
// The length guard only looks at the input: after a prefix is gone the suffix
// stage still runs, even on a remainder shorter than 4.
func (Stemmer) Stem(word string) string {
	if utf8.RuneCountInString(word) < minStemLength {
		return word
	}

	for _, p := range prefixes {
		if strings.HasPrefix(word, p) {
			word = word[len(p):]
			break
		}
	}

	for _, s := range suffixes {
		if strings.HasSuffix(word, s) {
			word = word[:len(word)-len(s)]
			break
		}
	}

	return word
}
