package arabic

import "unicode/utf8"

// AnalysisResult is the outcome of one Analyze call.
//
// It is built fresh per call and shares nothing with other results.
type AnalysisResult struct {
	OriginalLen  int      `json:"original_len"`  // Code points in the raw input
	WordCount    int      `json:"word_count"`    // Tokens before stopword removal
	CleanedWords []string `json:"cleaned_words"` // Tokens after stopword removal
	Stems        []string `json:"stems"`         // Stems[i] is the stem of CleanedWords[i]
}

// StemFrequencies counts how often each non-empty stem occurs.
func (r AnalysisResult) StemFrequencies() map[string]int {
	freqs := make(map[string]int, len(r.Stems))
	for _, s := range r.Stems {
		if s != "" {
			freqs[s]++
		}
	}
	return freqs
}

// Analyzer runs the full pipeline: Normalizer → Tokenizer → StopwordFilter →
// Stemmer.
//
// An Analyzer holds no mutable state and may be shared between goroutines.
type Analyzer struct {
	normalizer Normalizer
	tokenizer  Tokenizer
	stopwords  StopwordFilter
	stemmer    Stemmer
}

// NewAnalyzer returns an Analyzer wired with the standard components.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze transforms raw text into an AnalysisResult.
//
// Each stage runs to completion before the next one starts; none of them can
// fail. Empty or whitespace-only text yields a zero word count and empty
// (non-nil) word and stem lists.
//
// Example:
//
//	a.Analyze("مرحبا بك في العالم العربي")
//	// Returns: {OriginalLen: 25, WordCount: 5,
//	//           CleanedWords: ["مرحبا", "بك", "العالم", "العربي"],
//	//           Stems:        ["مرحبا", "بك", "عالم", "عربي"]}
func (a *Analyzer) Analyze(text string) AnalysisResult {
	normalized := a.normalizer.Normalize(text)
	words := a.tokenizer.TokenizeWords(normalized)
	cleaned := a.stopwords.Remove(words)

	stems := make([]string, len(cleaned))
	for i, w := range cleaned {
		stems[i] = a.stemmer.Stem(w)
	}

	return AnalysisResult{
		OriginalLen:  utf8.RuneCountInString(text),
		WordCount:    len(words),
		CleanedWords: cleaned,
		Stems:        stems,
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// PACKAGE-LEVEL SHORTCUTS
// ═══════════════════════════════════════════════════════════════════════════════
// Thin wrappers over a shared default Analyzer, for callers that do not need
// to hold one. They use the very same rule tables as the component types.
// ═══════════════════════════════════════════════════════════════════════════════

var defaultAnalyzer = NewAnalyzer()

// Normalize removes diacritics, folds alef variants and trims text.
func Normalize(text string) string {
	return defaultAnalyzer.normalizer.Normalize(text)
}

// Clean normalizes text and keeps only its Arabic words, space separated.
func Clean(text string) string {
	return defaultAnalyzer.normalizer.Clean(text)
}

// TokenizeWords splits normalized text into Arabic word tokens.
func TokenizeWords(text string) []string {
	return defaultAnalyzer.tokenizer.TokenizeWords(text)
}

// RemoveStopwords drops stopwords from tokens, preserving order.
func RemoveStopwords(tokens []string) []string {
	return defaultAnalyzer.stopwords.Remove(tokens)
}

// Stem strips at most one prefix and one suffix from word.
func Stem(word string) string {
	return defaultAnalyzer.stemmer.Stem(word)
}

// Analyze runs the full pipeline over text.
func Analyze(text string) AnalysisResult {
	return defaultAnalyzer.Analyze(text)
}
