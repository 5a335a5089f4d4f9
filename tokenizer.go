package arabic

import "regexp"

// wordPattern matches maximal runs of the Arabic block (U+0600..U+06FF).
var wordPattern = regexp.MustCompile("[" + string(arabicBlockFirst) + "-" + string(arabicBlockLast) + "]+")

// Tokenizer segments normalized text into Arabic word tokens.
//
// The zero value is ready to use.
type Tokenizer struct{}

// TokenizeWords returns the maximal runs of Arabic-block code points in text,
// left to right.
//
// Anything outside the block (Latin letters, ASCII digits and punctuation,
// whitespace) only separates tokens and is dropped:
//
//	"مرحبا، world 42 بكم"  → ["مرحبا،", "بكم"]
//
// Note the Arabic comma stays attached: it lives inside the block.
//
// Text is expected to be normalized first. On raw text, diacritics are part
// of the block and simply remain inside the tokens.
func (Tokenizer) TokenizeWords(text string) []string {
	if text == "" {
		return []string{}
	}
	tokens := wordPattern.FindAllString(text, -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}
