// ═══════════════════════════════════════════════════════════════════════════════
// RULE TABLES
// ═══════════════════════════════════════════════════════════════════════════════
// Every rule the pipeline applies lives in this file:
//
//	diacritics    → code points deleted by the Normalizer
//	isAlefVariant → code points folded into bare alef (ا)
//	arabicBlock*  → the code point range the Tokenizer keeps
//	prefixes      → leading affixes the Stemmer may strip (ordered!)
//	suffixes      → trailing affixes the Stemmer may strip (ordered!)
//	stopwordSet   → closed-class words the StopwordFilter drops
//
// All of them are initialized once at package load and never written again.
// Nothing exported hands out the underlying slices or map, so there is no
// runtime mutation path: Prefixes(), Suffixes() and Stopwords() return copies.
// ═══════════════════════════════════════════════════════════════════════════════

package arabic

import (
	"sort"
	"unicode"
)

const (
	Alef           = '\u0627' // ا  canonical form
	AlefMadda      = '\u0622' // آ
	AlefHamzaAbove = '\u0623' // أ
	AlefHamzaBelow = '\u0625' // إ
	AlefWasla      = '\u0671' // ٱ
)

const (
	arabicBlockFirst = '\u0600'
	arabicBlockLast  = '\u06FF'
)

// minStemLength is the shortest word (in code points) the Stemmer touches.
const minStemLength = 4

// diacritics covers the marks deleted during normalization:
//
//	U+0617..U+061A  small high marks (Quranic annotation)
//	U+064B..U+0652  tanween, fatha, damma, kasra, shadda, sukun
//	U+0670          superscript alef
//
// This is deliberately narrower than unicode.Mn: maddah and hamza marks above
// U+0652 survive.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0617, Hi: 0x061A, Stride: 1},
		{Lo: 0x064B, Hi: 0x0652, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
	},
}

// isAlefVariant reports whether r is one of the four forms folded into Alef.
func isAlefVariant(r rune) bool {
	switch r {
	case AlefHamzaAbove, AlefHamzaBelow, AlefMadda, AlefWasla:
		return true
	}
	return false
}

// ═══════════════════════════════════════════════════════════════════════════════
// AFFIX TABLES
// ═══════════════════════════════════════════════════════════════════════════════
// Order is precedence: the first entry that matches wins and no other entry of
// the same table is tried. Keep the order exactly as it is; there is no oracle
// that would catch a reordering.
//
//	prefixes: ال (the), وال (and the), بال (with the), فال (so the)
//	suffixes: ون / ين (masc. plural), ات (fem. plural), ه (his/its), ة (ta marbuta)
// ═══════════════════════════════════════════════════════════════════════════════

var prefixes = []string{"ال", "وال", "بال", "فال"}

var suffixes = []string{"ون", "ين", "ات", "ه", "ة"}

// Prefixes returns a copy of the ordered prefix table.
func Prefixes() []string {
	return append([]string(nil), prefixes...)
}

// Suffixes returns a copy of the ordered suffix table.
func Suffixes() []string {
	return append([]string(nil), suffixes...)
}

// ═══════════════════════════════════════════════════════════════════════════════
// STOPWORDS
// ═══════════════════════════════════════════════════════════════════════════════
// A closed-class inventory: particles, prepositions, conjunctions, pronouns,
// demonstratives, relatives and interrogatives. Derived from the Savoy list
// shipped with Lucene, trimmed to function words.
//
// Entries are stored in NORMALIZED form only (no diacritics, alef variants
// folded). Lookup is exact, so "انا" is a stopword but "أنا" is not: callers
// are expected to normalize before filtering.
//
// Bump StopwordsVersion whenever the list changes; indexes built with an older
// list will disagree with new queries.
// ═══════════════════════════════════════════════════════════════════════════════

// StopwordsVersion identifies the stopword inventory below.
const StopwordsVersion = "2026.1"

var stopwordList = []string{
	// conjunctions and particles
	"و", "ف", "ثم", "او", "ام", "بل", "لكن", "حتى", "اذا", "اذ", "لو", "لولا",
	"ان", "انه", "انها", "كي", "لكي", "قد", "لقد", "سوف", "لا", "لم", "لن",
	"ليس", "الا", "اما", "كما", "ايضا", "حيث", "عندما", "بينما", "كلما",
	"مثل", "غير", "سوى", "كل", "بعض", "جميع",

	// prepositions
	"من", "الى", "عن", "على", "في", "ب", "ل", "ك", "مع", "منذ", "مذ", "عند",
	"لدى", "بين", "نحو", "خلال", "ضمن", "دون", "فوق", "تحت", "امام", "خلف",
	"بعد", "قبل", "حول", "عبر", "لدي",

	// prepositions with attached pronouns
	"منه", "منها", "فيه", "فيها", "به", "بها", "له", "لها", "عليه", "عليها",
	"عنه", "عنها", "اليه", "اليها",

	// personal pronouns
	"انا", "نحن", "انت", "انتم", "انتما", "انتن", "هو", "هي", "هما", "هم", "هن",

	// demonstratives
	"هذا", "هذه", "هذان", "هاتان", "هؤلاء", "ذلك", "تلك", "اولئك", "هنا",
	"هناك", "هنالك",

	// relatives
	"الذي", "التي", "الذين", "اللذان", "اللتان", "اللاتي", "اللواتي",

	// interrogatives
	"هل", "ما", "ماذا", "متى", "اين", "كيف", "لماذا", "كم", "اي",
}

var stopwordSet = newStringSet(stopwordList)

func newStringSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Stopwords returns the stopword inventory, sorted.
func Stopwords() []string {
	words := make([]string, 0, len(stopwordSet))
	for w := range stopwordSet {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
