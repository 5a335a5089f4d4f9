package arabic

// StopwordFilter drops closed-class words from a token sequence.
//
// The zero value filters against the package stopword inventory (see
// StopwordsVersion). It applies no normalization of its own: pass tokens that
// went through the Normalizer.
type StopwordFilter struct{}

// Remove returns the tokens that are not stopwords, in their original order.
//
// Example:
//
//	f.Remove([]string{"مرحبا", "في", "العالم", "و", "أنا"})
//	// Returns: ["مرحبا", "العالم", "أنا"]   ("أنا" is not normalized, so it stays)
//
// The input slice is never modified; the result never grows past it.
func (StopwordFilter) Remove(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !IsStopword(token) {
			r = append(r, token)
		}
	}
	return r
}

// IsStopword reports whether token exactly matches an entry of the stopword
// inventory.
func IsStopword(token string) bool {
	_, exists := stopwordSet[token]
	return exists
}
