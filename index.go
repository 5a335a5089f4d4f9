// ═══════════════════════════════════════════════════════════════════════════════
// STEM INDEX
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index keyed by stems instead of surface words, so documents that
// use different inflections of the same root meet under one entry.
//
// Example: Given these documents:
//
//	Doc 1: "الكتاب على الطاولة"
//	Doc 2: "والكتب في المكتبة"
//	Doc 3: "قرأت كتابه"
//
// The analyzer reduces them to stems:
//
//	Doc 1: ["كتاب", "طاول"]
//	Doc 2: ["كتب", "مكتب"]
//	Doc 3: ["قر", "كتاب"]      (قرات loses "ات": stemming is only a heuristic)
//
// and the index maps every stem to the documents that contain it:
//
//	"كتاب" → {1, 3}
//	"كتب"  → {2}
//	"مكتب" → {2}
//	...
//
// Architecture:
//
//	InvertedIndex
//	├── terms: B-tree of termEntry, ordered by stem
//	│   └── termEntry{stem, docs *roaring.Bitmap}
//	├── docs:  docID → DocumentStats (stem frequencies, for BM25)
//	└── mu:    RWMutex; readers share, writers are exclusive
//
// Roaring bitmaps give compressed document sets with fast AND / OR / NOT for
// the query builder. The B-tree keeps the stem dictionary sorted, which makes
// Terms and TermsWithPrefix ordered scans instead of map sorts.
// ═══════════════════════════════════════════════════════════════════════════════

package arabic

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/tidwall/btree"
)

// DocumentStats stores what the index remembers about one document.
type DocumentStats struct {
	DocID     uint32         // Document identifier
	Length    int            // Number of stems indexed for the document
	TermFreqs map[string]int // How many times each stem appears
}

// termEntry is one row of the stem dictionary.
type termEntry struct {
	stem string
	docs *roaring.Bitmap
}

func termLess(a, b termEntry) bool {
	return a.stem < b.stem
}

// InvertedIndex maps stems to the documents containing them and keeps the
// statistics BM25 ranking needs.
//
// Create it with NewInvertedIndex or NewInvertedIndexWithConfig; the zero
// value is not usable. All methods are safe for concurrent use.
type InvertedIndex struct {
	mu sync.RWMutex

	terms *btree.BTreeG[termEntry]
	docs  map[uint32]DocumentStats

	totalTerms int64 // Sum of DocumentStats.Length over all documents
	bm25       BM25Parameters
	maxResults int // Result limit of Search
	analyzer   *Analyzer
}

// NewInvertedIndex creates an empty index with default BM25 parameters.
func NewInvertedIndex() *InvertedIndex {
	return NewInvertedIndexWithConfig(DefaultConfig())
}

// NewInvertedIndexWithConfig creates an empty index tuned by cfg: BM25
// parameters for ranking and MaxResults as the limit of Search.
func NewInvertedIndexWithConfig(cfg Config) *InvertedIndex {
	return &InvertedIndex{
		terms:      btree.NewBTreeG[termEntry](termLess),
		docs:       make(map[uint32]DocumentStats),
		bm25:       cfg.BM25,
		maxResults: cfg.MaxResults,
		analyzer:   NewAnalyzer(),
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// INDEXING
// ═══════════════════════════════════════════════════════════════════════════════

// Index analyzes document and records its stems under docID.
//
// STEP-BY-STEP EXAMPLE:
// ----------------------
// Input: docID=1, document="الكتاب على الطاولة"
//
// Step 1: Analysis
//
//	Analyze() → CleanedWords ["الكتاب", "الطاولة"], Stems ["كتاب", "طاول"]
//	("على" is a stopword)
//
// Step 2: Statistics
//
//	DocumentStats{DocID: 1, Length: 2, TermFreqs: {"كتاب": 1, "طاول": 1}}
//
// Step 3: Dictionary
//
//	terms["كتاب"].docs ← add 1
//	terms["طاول"].docs ← add 1
//
// Indexing an ID that is already present replaces the earlier version.
// Empty stems (a word made only of affixes) are not indexed.
//
// The analysis result is returned so callers can report on it.
func (idx *InvertedIndex) Index(docID uint32, document string) AnalysisResult {
	result := idx.analyzer.Analyze(document)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.docs[docID]; exists {
		idx.removeLocked(docID)
	}

	freqs := result.StemFrequencies()
	length := 0
	for stem, n := range freqs {
		idx.indexStem(stem, docID)
		length += n
	}

	idx.docs[docID] = DocumentStats{
		DocID:     docID,
		Length:    length,
		TermFreqs: freqs,
	}
	idx.totalTerms += int64(length)

	slog.Info("indexing document",
		slog.Any("docID", docID),
		slog.Int("words", result.WordCount),
		slog.Int("stems", length))

	documentsIndexed.Inc()
	tokensAnalyzed.Add(float64(result.WordCount))
	stemsIndexed.Add(float64(length))

	return result
}

// indexStem sets docID in the bitmap of stem, creating the entry on first use.
func (idx *InvertedIndex) indexStem(stem string, docID uint32) {
	entry, exists := idx.terms.Get(termEntry{stem: stem})
	if !exists {
		entry = termEntry{stem: stem, docs: roaring.NewBitmap()}
		idx.terms.Set(entry)
	}
	entry.docs.Add(docID)
}

// Delete removes a document from the index. Stems left without any document
// disappear from the dictionary.
func (idx *InvertedIndex) Delete(docID uint32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.docs[docID]; !exists {
		return fmt.Errorf("delete %d: %w", docID, ErrUnknownDocument)
	}
	idx.removeLocked(docID)

	slog.Info("deleted document", slog.Any("docID", docID))
	documentsDeleted.Inc()
	return nil
}

// removeLocked drops docID from every structure. Caller holds idx.mu.
func (idx *InvertedIndex) removeLocked(docID uint32) {
	stats := idx.docs[docID]
	for stem := range stats.TermFreqs {
		entry, exists := idx.terms.Get(termEntry{stem: stem})
		if !exists {
			continue
		}
		entry.docs.Remove(docID)
		if entry.docs.IsEmpty() {
			idx.terms.Delete(entry)
		}
	}
	idx.totalTerms -= int64(stats.Length)
	delete(idx.docs, docID)
}

// ═══════════════════════════════════════════════════════════════════════════════
// LOOKUPS
// ═══════════════════════════════════════════════════════════════════════════════

// Document returns the statistics recorded for docID. The returned map is a
// copy.
func (idx *InvertedIndex) Document(docID uint32) (DocumentStats, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	stats, exists := idx.docs[docID]
	if !exists {
		return DocumentStats{}, fmt.Errorf("document %d: %w", docID, ErrUnknownDocument)
	}

	freqs := make(map[string]int, len(stats.TermFreqs))
	for k, v := range stats.TermFreqs {
		freqs[k] = v
	}
	stats.TermFreqs = freqs
	return stats, nil
}

// Len returns the number of indexed documents.
func (idx *InvertedIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// DocFrequency returns how many documents contain stem. The argument is used
// as is: pass a stem, not a surface word.
func (idx *InvertedIndex) DocFrequency(stem string) uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.docFrequencyLocked(stem)
}

func (idx *InvertedIndex) docFrequencyLocked(stem string) uint64 {
	entry, exists := idx.terms.Get(termEntry{stem: stem})
	if !exists {
		return 0
	}
	return entry.docs.GetCardinality()
}

// Terms returns every indexed stem in sorted order.
func (idx *InvertedIndex) Terms() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	terms := make([]string, 0, idx.terms.Len())
	idx.terms.Scan(func(e termEntry) bool {
		terms = append(terms, e.stem)
		return true
	})
	return terms
}

// TermsWithPrefix returns the indexed stems starting with prefix, sorted.
//
// The scan starts at the first stem >= prefix and stops at the first one
// that no longer shares it, so it only visits matching entries.
func (idx *InvertedIndex) TermsWithPrefix(prefix string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var terms []string
	idx.terms.Ascend(termEntry{stem: prefix}, func(e termEntry) bool {
		if !strings.HasPrefix(e.stem, prefix) {
			return false
		}
		terms = append(terms, e.stem)
		return true
	})
	if terms == nil {
		return []string{}
	}
	return terms
}

// docBitmapLocked returns a private copy of the bitmap of stem (empty when
// unknown). Caller holds idx.mu for reading.
func (idx *InvertedIndex) docBitmapLocked(stem string) *roaring.Bitmap {
	entry, exists := idx.terms.Get(termEntry{stem: stem})
	if !exists {
		return roaring.NewBitmap()
	}
	return entry.docs.Clone()
}

// allDocsLocked returns the bitmap of every indexed document. Caller holds
// idx.mu for reading.
func (idx *InvertedIndex) allDocsLocked() *roaring.Bitmap {
	all := roaring.NewBitmap()
	for docID := range idx.docs {
		all.Add(docID)
	}
	return all
}
