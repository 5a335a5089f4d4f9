package arabic

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

// newLibraryIndex builds the three-document index used by most tests:
//
//	1: "الكتاب على الطاولة" → [كتاب, طاول]
//	2: "والكتب في المكتبة"  → [كتب, مكتب]
//	3: "قرأت كتابه"          → [قر, كتاب]
func newLibraryIndex(t testing.TB) *InvertedIndex {
	t.Helper()

	idx := NewInvertedIndex()
	idx.Index(1, "الكتاب على الطاولة")
	idx.Index(2, "والكتب في المكتبة")
	idx.Index(3, "قرأت كتابه")
	return idx
}

// ═══════════════════════════════════════════════════════════════════════════════
// INVERTED INDEX CREATION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestNewInvertedIndex(t *testing.T) {
	idx := NewInvertedIndex()

	if idx == nil {
		t.Fatal("NewInvertedIndex() returned nil")
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if terms := idx.Terms(); len(terms) != 0 {
		t.Errorf("Terms() = %q, want none", terms)
	}
	if idx.bm25 != DefaultBM25Parameters() {
		t.Errorf("bm25 = %+v, want %+v", idx.bm25, DefaultBM25Parameters())
	}
}

func TestNewInvertedIndexWithConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BM25 = BM25Parameters{K1: 1.2, B: 0.5}

	idx := NewInvertedIndexWithConfig(cfg)
	if idx.bm25 != cfg.BM25 {
		t.Errorf("bm25 = %+v, want %+v", idx.bm25, cfg.BM25)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// INDEXING TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestInvertedIndex_Index_ReturnsAnalysis(t *testing.T) {
	idx := NewInvertedIndex()

	r := idx.Index(1, "الكتاب على الطاولة")

	if r.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", r.WordCount)
	}
	if want := []string{"كتاب", "طاول"}; !reflect.DeepEqual(r.Stems, want) {
		t.Errorf("Stems = %q, want %q", r.Stems, want)
	}
}

func TestInvertedIndex_Index_MultipleDocuments(t *testing.T) {
	idx := newLibraryIndex(t)

	want := []string{"طاول", "قر", "كتاب", "كتب", "مكتب"}
	if got := idx.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %q, want %q", got, want)
	}

	frequencies := map[string]uint64{
		"كتاب": 2,
		"كتب":  1,
		"مكتب": 1,
		"طاول": 1,
		"قر":   1,
		"قلم":  0,
	}
	for stem, want := range frequencies {
		if got := idx.DocFrequency(stem); got != want {
			t.Errorf("DocFrequency(%q) = %d, want %d", stem, got, want)
		}
	}

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
}

func TestInvertedIndex_Index_DuplicateWords(t *testing.T) {
	idx := NewInvertedIndex()
	idx.Index(1, "الكتاب والكتاب كتاب")

	stats, err := idx.Document(1)
	if err != nil {
		t.Fatalf("Document(1) error = %v", err)
	}
	// والكتاب loses وال, كتاب is kept as is: all three meet at "كتاب".
	if stats.TermFreqs["كتاب"] != 3 {
		t.Errorf("TermFreqs[كتاب] = %d, want 3", stats.TermFreqs["كتاب"])
	}
	if stats.Length != 3 {
		t.Errorf("Length = %d, want 3", stats.Length)
	}
	if idx.DocFrequency("كتاب") != 1 {
		t.Errorf("DocFrequency(كتاب) = %d, want 1", idx.DocFrequency("كتاب"))
	}
}

func TestInvertedIndex_Index_EmptyDocument(t *testing.T) {
	idx := NewInvertedIndex()
	idx.Index(1, "")
	idx.Index(2, "في من على")

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if terms := idx.Terms(); len(terms) != 0 {
		t.Errorf("Terms() = %q, want none", terms)
	}

	stats, err := idx.Document(2)
	if err != nil {
		t.Fatalf("Document(2) error = %v", err)
	}
	if stats.Length != 0 {
		t.Errorf("Length = %d, want 0", stats.Length)
	}
}

func TestInvertedIndex_Index_EmptyStemNotIndexed(t *testing.T) {
	idx := NewInvertedIndex()
	// "الون" is all affix: its stem is empty.
	idx.Index(1, "الون")

	if terms := idx.Terms(); len(terms) != 0 {
		t.Errorf("Terms() = %q, want none", terms)
	}
	if idx.DocFrequency("") != 0 {
		t.Error("empty stem was indexed")
	}
}

func TestInvertedIndex_Index_Replace(t *testing.T) {
	idx := NewInvertedIndex()
	idx.Index(1, "الكتاب الجديد")
	idx.Index(1, "القلم")

	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
	if want := []string{"قلم"}; !reflect.DeepEqual(idx.Terms(), want) {
		t.Errorf("Terms() = %q, want %q", idx.Terms(), want)
	}
	if idx.totalTerms != 1 {
		t.Errorf("totalTerms = %d, want 1", idx.totalTerms)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// DELETE TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestInvertedIndex_Delete(t *testing.T) {
	idx := newLibraryIndex(t)

	if err := idx.Delete(3); err != nil {
		t.Fatalf("Delete(3) error = %v", err)
	}

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	// "قر" only lived in document 3.
	if want := []string{"طاول", "كتاب", "كتب", "مكتب"}; !reflect.DeepEqual(idx.Terms(), want) {
		t.Errorf("Terms() = %q, want %q", idx.Terms(), want)
	}
	if idx.DocFrequency("كتاب") != 1 {
		t.Errorf("DocFrequency(كتاب) = %d, want 1", idx.DocFrequency("كتاب"))
	}
	if idx.totalTerms != 4 {
		t.Errorf("totalTerms = %d, want 4", idx.totalTerms)
	}
}

func TestInvertedIndex_Delete_Unknown(t *testing.T) {
	idx := newLibraryIndex(t)

	err := idx.Delete(42)
	if !errors.Is(err, ErrUnknownDocument) {
		t.Errorf("Delete(42) error = %v, want ErrUnknownDocument", err)
	}
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// LOOKUP TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestInvertedIndex_Document(t *testing.T) {
	idx := newLibraryIndex(t)

	stats, err := idx.Document(1)
	if err != nil {
		t.Fatalf("Document(1) error = %v", err)
	}
	want := DocumentStats{DocID: 1, Length: 2, TermFreqs: map[string]int{"كتاب": 1, "طاول": 1}}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("Document(1) = %+v, want %+v", stats, want)
	}

	// The map is a copy.
	stats.TermFreqs["كتاب"] = 99
	again, _ := idx.Document(1)
	if again.TermFreqs["كتاب"] != 1 {
		t.Error("mutating Document() result changed the index")
	}

	if _, err := idx.Document(7); !errors.Is(err, ErrUnknownDocument) {
		t.Errorf("Document(7) error = %v, want ErrUnknownDocument", err)
	}
}

func TestInvertedIndex_TermsWithPrefix(t *testing.T) {
	idx := newLibraryIndex(t)

	tests := []struct {
		prefix string
		want   []string
	}{
		{"كت", []string{"كتاب", "كتب"}},
		{"كتا", []string{"كتاب"}},
		{"م", []string{"مكتب"}},
		{"ز", []string{}},
		{"", []string{"طاول", "قر", "كتاب", "كتب", "مكتب"}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := idx.TermsWithPrefix(tt.prefix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TermsWithPrefix(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// CONCURRENCY TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestInvertedIndex_ConcurrentIndexing(t *testing.T) {
	idx := NewInvertedIndex()
	docs := []string{
		"الكتاب على الطاولة",
		"والكتب في المكتبة",
		"قرأت كتابه",
		"المعلمون في المدرسة",
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(docID uint32) {
			defer wg.Done()
			idx.Index(docID, docs[int(docID)%len(docs)])
			idx.RankBM25("الكتب", 5)
			idx.Terms()
		}(uint32(i))
	}
	wg.Wait()

	if idx.Len() != 100 {
		t.Errorf("Len() = %d, want 100", idx.Len())
	}
	// Documents 0, 4, 8, ... and 2, 6, 10, ... mention a book stem.
	if got := idx.DocFrequency("كتاب"); got != 50 {
		t.Errorf("DocFrequency(كتاب) = %d, want 50", got)
	}
}

func BenchmarkInvertedIndex_Index(b *testing.B) {
	idx := NewInvertedIndex()
	doc := "والكتب الجديدة في المكتبة العامة يقرؤها الطلاب والمعلمون"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Index(uint32(i), doc)
	}
}
