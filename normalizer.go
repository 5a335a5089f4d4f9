// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Analysis turns raw Arabic text into cleaned words and approximate roots
// through four strictly ordered stages:
//
//  1. Normalization    → Drop diacritics, fold alef variants, trim
//  2. Tokenization     → Keep maximal runs of Arabic-block code points
//  3. Stopword removal → Drop closed-class words ("في", "و", ...)
//  4. Stemming         → Strip at most one prefix and one suffix
//
// EXAMPLE TRANSFORMATION:
// -----------------------
// Input:  "وَالكُتُبُ في المَكْتَبَةِ!"
// Step 1: "والكتب في المكتبة!"                (normalize)
// Step 2: ["والكتب", "في", "المكتبة"]          (tokenize)
// Step 3: ["والكتب", "المكتبة"]                (remove stopwords)
// Step 4: ["كتب", "مكتب"]                      (stem)
//
// Every stage is a pure function of its input. The only shared state is the
// rule tables in tables.go, which are never written after package load, so
// all of it is safe for concurrent use without locking.
// ═══════════════════════════════════════════════════════════════════════════════

package arabic

import (
	"strings"
	"sync"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	removeDiacritics = runes.Remove(runes.In(diacritics))
	foldAlef         = runes.Map(func(r rune) rune {
		if isAlefVariant(r) {
			return Alef
		}
		return r
	})
)

// A transform.Chain keeps intermediate buffers, so chains are pooled instead
// of shared.
var normalizeChains = sync.Pool{
	New: func() any {
		return transform.Chain(removeDiacritics, foldAlef)
	},
}

// Normalizer removes diacritics and unifies alef variants.
//
// The zero value is ready to use.
type Normalizer struct{}

// Normalize returns text with every diacritic deleted, every alef variant
// (أ إ آ ٱ) replaced by bare alef (ا) and surrounding whitespace trimmed.
//
// It is a pure character-class filter: punctuation, digits and Latin letters
// pass through untouched.
//
// Example:
//
//	n.Normalize("  أَنا أَكْتُبُ!  ")
//	// Returns: "انا اكتب!"
func (Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := normalizeChains.Get().(transform.Transformer)
	defer normalizeChains.Put(t)

	// Neither stage can fail on string input.
	out, _, _ := transform.String(t, text)
	return strings.TrimSpace(out)
}

// Clean normalizes text and keeps only its Arabic words, joined by single
// spaces. Punctuation, digits and runs of whitespace disappear.
//
// Example:
//
//	n.Clean("مَرْحَبًا!! 123 أَنا أَكْتُبُ")
//	// Returns: "مرحبا انا اكتب"
func (n Normalizer) Clean(text string) string {
	return strings.Join(Tokenizer{}.TokenizeWords(n.Normalize(text)), " ")
}
