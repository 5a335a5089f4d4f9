package arabic

import (
	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY BUILDER: Boolean Stem Queries with Roaring Bitmaps
// ═══════════════════════════════════════════════════════════════════════════════
// A fluent API instead of a query parser. Every Term is analyzed first, so
// the builder matches stems, not surface forms.
//
// EXAMPLE USAGE:
// --------------
// Documents mentioning books AND libraries:
//
//	results := NewQueryBuilder(index).
//	    Term("الكتب").
//	    And().
//	    Term("المكتبة").
//	    Execute()
//
// Documents about (teachers OR students) but NOT schools:
//
//	results := NewQueryBuilder(index).
//	    Group(func(q *QueryBuilder) {
//	        q.Term("المعلمون").Or().Term("الطلاب")
//	    }).
//	    And().Not().Term("المدرسة").
//	    Execute()
//
// Operators combine strictly left to right; use Group for precedence.
// ═══════════════════════════════════════════════════════════════════════════════

// QueryBuilder provides a fluent interface for building boolean queries.
//
// A builder is single-use and not safe for concurrent use; the index it
// reads from is.
type QueryBuilder struct {
	index  *InvertedIndex
	stack  []*roaring.Bitmap // Operands, left to right
	ops    []QueryOp         // ops[i] joins stack[i] and stack[i+1]
	negate bool              // Whether the next operand is negated
	stems  []string          // Positive stems, for BM25 scoring
}

// QueryOp is a pending boolean operation.
type QueryOp int

const (
	OpAnd QueryOp = iota + 1
	OpOr
)

// NewQueryBuilder creates a query builder over index.
func NewQueryBuilder(index *InvertedIndex) *QueryBuilder {
	return &QueryBuilder{
		index: index,
		stack: make([]*roaring.Bitmap, 0),
		ops:   make([]QueryOp, 0),
		stems: make([]string, 0),
	}
}

// Term adds the documents containing the stem of word.
//
// The word is normalized and stemmed exactly like indexed text:
//
//	qb.Term("والكتب")  // same documents as Term("كتب")
//
// A word that yields no stem (a stopword, no Arabic letters) matches nothing;
// under Not() it therefore matches every document.
func (qb *QueryBuilder) Term(word string) *QueryBuilder {
	stems := queryStems(qb.index.analyzer.Analyze(word))

	var bitmap *roaring.Bitmap
	if len(stems) == 0 {
		bitmap = roaring.NewBitmap()
	} else {
		stem := stems[0]
		if !qb.negate {
			qb.stems = append(qb.stems, stem)
		}
		bitmap = qb.termBitmap(stem)
	}

	if qb.negate {
		bitmap = qb.negateBitmap(bitmap)
		qb.negate = false
	}

	qb.pushBitmap(bitmap)
	return qb
}

// And intersects the previous operand with the next one.
func (qb *QueryBuilder) And() *QueryBuilder {
	qb.ops = append(qb.ops, OpAnd)
	return qb
}

// Or unites the previous operand with the next one.
func (qb *QueryBuilder) Or() *QueryBuilder {
	qb.ops = append(qb.ops, OpOr)
	return qb
}

// Not negates the next Term or Group.
//
//	qb.Term("الكتاب").And().Not().Term("المدرسة")
func (qb *QueryBuilder) Not() *QueryBuilder {
	qb.negate = true
	return qb
}

// Group evaluates fn on a fresh builder and uses its result as one operand.
//
//	qb.Group(func(q *QueryBuilder) {
//	    q.Term("الكتب").Or().Term("المجلات")
//	}).And().Term("العربية")
//	// (books OR magazines) AND arabic
func (qb *QueryBuilder) Group(fn func(*QueryBuilder)) *QueryBuilder {
	subQuery := NewQueryBuilder(qb.index)
	fn(subQuery)

	result := subQuery.evaluate()
	if !qb.negate {
		qb.stems = append(qb.stems, subQuery.stems...)
	}

	if qb.negate {
		result = qb.negateBitmap(result)
		qb.negate = false
	}

	qb.pushBitmap(result)
	return qb
}

// Execute combines the operands and returns the matching document IDs.
//
// Two operands without an operator between them are intersected, as if
// And() had been called.
//
// The result belongs to the caller; Execute may be called again.
func (qb *QueryBuilder) Execute() *roaring.Bitmap {
	queriesTotal.WithLabelValues("boolean").Inc()
	return qb.evaluate()
}

// evaluate folds the operands left to right into a fresh bitmap.
func (qb *QueryBuilder) evaluate() *roaring.Bitmap {
	if len(qb.stack) == 0 {
		return roaring.NewBitmap()
	}

	result := qb.stack[0].Clone()
	for i := 1; i < len(qb.stack); i++ {
		op := OpAnd
		if i-1 < len(qb.ops) {
			op = qb.ops[i-1]
		}
		switch op {
		case OpOr:
			result.Or(qb.stack[i])
		default:
			result.And(qb.stack[i])
		}
	}

	return result
}

// ExecuteWithBM25 runs the boolean query and ranks its documents by BM25
// over the positive (non-negated) stems of the query.
//
//	matches := NewQueryBuilder(index).
//	    Term("الكتب").And().Term("العربية").
//	    ExecuteWithBM25(10)
func (qb *QueryBuilder) ExecuteWithBM25(maxResults int) []Match {
	resultBitmap := qb.Execute()

	qb.index.mu.RLock()
	defer qb.index.mu.RUnlock()

	return limitResults(qb.index.scoreLocked(resultBitmap, qb.stems), maxResults)
}

// ═══════════════════════════════════════════════════════════════════════════════
// INTERNAL HELPER METHODS
// ═══════════════════════════════════════════════════════════════════════════════

// termBitmap retrieves a copy of the bitmap for a stem.
func (qb *QueryBuilder) termBitmap(stem string) *roaring.Bitmap {
	qb.index.mu.RLock()
	defer qb.index.mu.RUnlock()
	return qb.index.docBitmapLocked(stem)
}

// negateBitmap returns all documents EXCEPT those in bitmap.
func (qb *QueryBuilder) negateBitmap(bitmap *roaring.Bitmap) *roaring.Bitmap {
	qb.index.mu.RLock()
	allDocs := qb.index.allDocsLocked()
	qb.index.mu.RUnlock()

	return roaring.AndNot(allDocs, bitmap)
}

func (qb *QueryBuilder) pushBitmap(bitmap *roaring.Bitmap) {
	qb.stack = append(qb.stack, bitmap)
}

// ═══════════════════════════════════════════════════════════════════════════════
// CONVENIENCE METHODS FOR COMMON PATTERNS
// ═══════════════════════════════════════════════════════════════════════════════

// AllOf finds documents containing ALL of the given words (AND).
func AllOf(index *InvertedIndex, words ...string) *roaring.Bitmap {
	if len(words) == 0 {
		return roaring.NewBitmap()
	}

	qb := NewQueryBuilder(index).Term(words[0])
	for i := 1; i < len(words); i++ {
		qb.And().Term(words[i])
	}
	return qb.Execute()
}

// AnyOf finds documents containing ANY of the given words (OR).
func AnyOf(index *InvertedIndex, words ...string) *roaring.Bitmap {
	if len(words) == 0 {
		return roaring.NewBitmap()
	}

	qb := NewQueryBuilder(index).Term(words[0])
	for i := 1; i < len(words); i++ {
		qb.Or().Term(words[i])
	}
	return qb.Execute()
}

// TermExcluding finds documents with include but without exclude.
func TermExcluding(index *InvertedIndex, include, exclude string) *roaring.Bitmap {
	return NewQueryBuilder(index).
		Term(include).
		And().Not().Term(exclude).
		Execute()
}
