// ═══════════════════════════════════════════════════════════════════════════════
// BM25 RANKING
// ═══════════════════════════════════════════════════════════════════════════════
// BM25 estimates how relevant each document is to a query. Queries go through
// the same analysis as documents, so "الكتب" finds documents that say "كتب"
// or "والكتب".
//
// For each query stem:
//
//	score += IDF(stem) * (TF * (k1 + 1)) / (TF + k1 * (1 - b + b * (docLen / avgDocLen)))
//
// Where:
//
//	IDF       = log((N - df + 0.5) / (df + 0.5) + 1)
//	TF        = occurrences of the stem in the document
//	docLen    = stems in the document
//	avgDocLen = average stems per document
//	N, df     = document count, documents containing the stem
// ═══════════════════════════════════════════════════════════════════════════════

package arabic

import (
	"log/slog"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Match is one ranked document.
type Match struct {
	DocID uint32  `json:"doc_id"` // Document identifier
	Score float64 `json:"score"`  // How relevant is this document?
}

// calculateIDF computes the inverse document frequency of stem. Caller holds
// idx.mu for reading.
//
// Rare stems score high, ubiquitous ones close to zero. The document
// frequency comes straight from the bitmap cardinality.
func (idx *InvertedIndex) calculateIDF(stem string) float64 {
	df := float64(idx.docFrequencyLocked(stem))
	if df == 0 {
		return 0.0
	}

	N := float64(len(idx.docs))

	return math.Log((N-df+0.5)/(df+0.5) + 1.0)
}

// calculateBM25Score computes the BM25 score of docID for the query stems.
// Caller holds idx.mu for reading.
func (idx *InvertedIndex) calculateBM25Score(docID uint32, queryStems []string) float64 {
	docStats, exists := idx.docs[docID]
	if !exists || idx.totalTerms == 0 {
		return 0.0
	}

	avgDocLen := float64(idx.totalTerms) / float64(len(idx.docs))
	docLen := float64(docStats.Length)

	score := 0.0
	k1 := idx.bm25.K1
	b := idx.bm25.B

	for _, stem := range queryStems {
		tf := float64(docStats.TermFreqs[stem])
		if tf == 0 {
			continue
		}

		idf := idx.calculateIDF(stem)
		numerator := tf * (k1 + 1)
		denominator := tf + k1*(1-b+b*(docLen/avgDocLen))
		score += idf * (numerator / denominator)
	}

	return score
}

// RankBM25 returns the maxResults documents that best match query, best
// first. Ties are broken by ascending document ID.
//
// EXAMPLE:
// --------
// Query: "الكتب العربية"
//
//	Step 1: Analyze → stems ["كتب", "عربي"]
//	Step 2: Candidates = docs("كتب") ∪ docs("عربي")
//	Step 3: Score each candidate with BM25
//	Step 4: Sort and keep the top maxResults
//
// A query without any stem (empty, stopwords only, no Arabic) and a
// non-positive maxResults both yield an empty result.
func (idx *InvertedIndex) RankBM25(query string, maxResults int) []Match {
	slog.Info("BM25 ranking", slog.String("query", query))
	queriesTotal.WithLabelValues("bm25").Inc()

	if maxResults <= 0 {
		return []Match{}
	}

	stems := queryStems(idx.analyzer.Analyze(query))
	if len(stems) == 0 {
		return []Match{}
	}

	slog.Debug("search stems", slog.Any("stems", stems))

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	candidates := roaring.NewBitmap()
	for _, stem := range stems {
		if entry, exists := idx.terms.Get(termEntry{stem: stem}); exists {
			candidates.Or(entry.docs)
		}
	}

	return limitResults(idx.scoreLocked(candidates, stems), maxResults)
}

// Search ranks query like RankBM25, limited to the MaxResults of the
// configuration the index was created with.
//
//	idx := NewInvertedIndexWithConfig(cfg) // cfg.MaxResults = 3
//	idx.Search("الكتب") // at most 3 matches
func (idx *InvertedIndex) Search(query string) []Match {
	return idx.RankBM25(query, idx.maxResults)
}

// scoreLocked scores every document of candidates and returns the positive
// matches sorted. Caller holds idx.mu for reading.
func (idx *InvertedIndex) scoreLocked(candidates *roaring.Bitmap, stems []string) []Match {
	results := make([]Match, 0, candidates.GetCardinality())

	iter := candidates.Iterator()
	for iter.HasNext() {
		docID := iter.Next()
		score := idx.calculateBM25Score(docID, stems)

		if score > 0 {
			results = append(results, Match{
				DocID: docID,
				Score: score,
			})
		}
	}

	sortMatchesByScore(results)
	return results
}

// queryStems returns the non-empty stems of an analyzed query.
func queryStems(r AnalysisResult) []string {
	stems := make([]string, 0, len(r.Stems))
	for _, s := range r.Stems {
		if s != "" {
			stems = append(stems, s)
		}
	}
	return stems
}

// sortMatchesByScore sorts matches by descending score, then ascending ID.
func sortMatchesByScore(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].DocID < matches[j].DocID
	})
}

// limitResults returns at most maxResults items.
func limitResults(matches []Match, maxResults int) []Match {
	if maxResults < 0 {
		maxResults = 0
	}
	if len(matches) > maxResults {
		return matches[:maxResults]
	}
	return matches
}
