package arabic

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"github.com/tidwall/btree"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SERIALIZATION: Saving and Loading the Stem Index
// ═══════════════════════════════════════════════════════════════════════════════
// BINARY FORMAT (little endian):
// ------------------------------
// [Header]
//   - Magic:       4 bytes "ARSI"
//   - Version:     uint16
//   - NumDocs:     uint32
//   - NumTerms:    uint32
//   - TotalTerms:  uint64
//   - BM25.K1:     float64
//   - BM25.B:      float64
//
// [Document Statistics] (NumDocs times, ascending DocID)
//   - DocID:       uint32
//   - Length:      uint32
//   - NumStems:    uint32
//   - For each stem (sorted): [len uint32][stem bytes][freq uint32]
//
// [Stem Dictionary] (NumTerms times, B-tree order)
//   - [len uint32][stem bytes]
//   - [len uint32][roaring bitmap bytes]
//
// The bitmaps are stored in the portable roaring format, so the output is
// identical across platforms and stable for equal indexes.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	indexMagic   = "ARSI"
	indexVersion = uint16(1)
)

// Encode serializes the index.
func (idx *InvertedIndex) Encode() ([]byte, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e := &indexEncoder{buf: new(bytes.Buffer)}

	e.buf.WriteString(indexMagic)
	e.writeUint16(indexVersion)
	e.writeUint32(uint32(len(idx.docs)))
	e.writeUint32(uint32(idx.terms.Len()))
	e.writeUint64(uint64(idx.totalTerms))
	e.writeUint64(math.Float64bits(idx.bm25.K1))
	e.writeUint64(math.Float64bits(idx.bm25.B))

	docIDs := make([]uint32, 0, len(idx.docs))
	for docID := range idx.docs {
		docIDs = append(docIDs, docID)
	}
	sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })

	for _, docID := range docIDs {
		e.encodeDocStats(idx.docs[docID])
	}

	var err error
	idx.terms.Scan(func(entry termEntry) bool {
		err = e.encodeTerm(entry)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

type indexEncoder struct {
	buf *bytes.Buffer
}

func (e *indexEncoder) encodeDocStats(stats DocumentStats) {
	e.writeUint32(stats.DocID)
	e.writeUint32(uint32(stats.Length))
	e.writeUint32(uint32(len(stats.TermFreqs)))

	stems := make([]string, 0, len(stats.TermFreqs))
	for stem := range stats.TermFreqs {
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	for _, stem := range stems {
		e.writeBytes([]byte(stem))
		e.writeUint32(uint32(stats.TermFreqs[stem]))
	}
}

func (e *indexEncoder) encodeTerm(entry termEntry) error {
	data, err := entry.docs.ToBytes()
	if err != nil {
		return fmt.Errorf("encode bitmap of %q: %w", entry.stem, err)
	}
	e.writeBytes([]byte(entry.stem))
	e.writeBytes(data)
	return nil
}

func (e *indexEncoder) writeUint16(v uint16) {
	e.buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func (e *indexEncoder) writeUint32(v uint32) {
	e.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (e *indexEncoder) writeUint64(v uint64) {
	e.buf.Write(binary.LittleEndian.AppendUint64(nil, v))
}

// writeBytes writes a length-prefixed byte string.
func (e *indexEncoder) writeBytes(data []byte) {
	e.writeUint32(uint32(len(data)))
	e.buf.Write(data)
}

// ═══════════════════════════════════════════════════════════════════════════════
// DESERIALIZATION
// ═══════════════════════════════════════════════════════════════════════════════

// Decode replaces the contents of the index with an encoded one.
//
// The input is validated completely before anything is replaced: on error the
// index keeps its previous contents and the error wraps ErrCorruptIndex.
func (idx *InvertedIndex) Decode(data []byte) error {
	decoded, err := decodeIndex(data)
	if err != nil {
		slog.Warn("decode index failed", slog.Int("bytes", len(data)), slog.Any("error", err))
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.terms = decoded.terms
	idx.docs = decoded.docs
	idx.totalTerms = decoded.totalTerms
	idx.bm25 = decoded.bm25
	if idx.analyzer == nil {
		idx.analyzer = NewAnalyzer()
	}
	return nil
}

type decodedIndex struct {
	terms      *btree.BTreeG[termEntry]
	docs       map[uint32]DocumentStats
	totalTerms int64
	bm25       BM25Parameters
}

func decodeIndex(data []byte) (*decodedIndex, error) {
	d := &indexDecoder{data: data}

	magic, err := d.readN(len(indexMagic))
	if err != nil {
		return nil, err
	}
	if string(magic) != indexMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptIndex, magic)
	}

	version, err := d.readUint16()
	if err != nil {
		return nil, err
	}
	if version != indexVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptIndex, version)
	}

	numDocs, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	numTerms, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	totalTerms, err := d.readUint64()
	if err != nil {
		return nil, err
	}
	k1, err := d.readUint64()
	if err != nil {
		return nil, err
	}
	b, err := d.readUint64()
	if err != nil {
		return nil, err
	}

	out := &decodedIndex{
		terms:      btree.NewBTreeG[termEntry](termLess),
		docs:       make(map[uint32]DocumentStats),
		totalTerms: int64(totalTerms),
		bm25:       BM25Parameters{K1: math.Float64frombits(k1), B: math.Float64frombits(b)},
	}
	if err := out.bm25.validate(); err != nil {
		return nil, fmt.Errorf("%w: bm25 %v", ErrCorruptIndex, err)
	}

	var sumLengths int64
	for i := uint32(0); i < numDocs; i++ {
		stats, err := d.decodeDocStats()
		if err != nil {
			return nil, err
		}
		if _, dup := out.docs[stats.DocID]; dup {
			return nil, fmt.Errorf("%w: duplicate document %d", ErrCorruptIndex, stats.DocID)
		}
		out.docs[stats.DocID] = stats
		sumLengths += int64(stats.Length)
	}
	if sumLengths != out.totalTerms {
		return nil, fmt.Errorf("%w: total terms %d, documents sum to %d",
			ErrCorruptIndex, out.totalTerms, sumLengths)
	}

	for i := uint32(0); i < numTerms; i++ {
		entry, err := d.decodeTerm()
		if err != nil {
			return nil, err
		}
		if _, dup := out.terms.Get(entry); dup {
			return nil, fmt.Errorf("%w: duplicate stem %q", ErrCorruptIndex, entry.stem)
		}
		iter := entry.docs.Iterator()
		for iter.HasNext() {
			docID := iter.Next()
			if out.docs[docID].TermFreqs[entry.stem] == 0 {
				return nil, fmt.Errorf("%w: stem %q lists document %d without frequency",
					ErrCorruptIndex, entry.stem, docID)
			}
		}
		out.terms.Set(entry)
	}

	if !d.isComplete() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptIndex, len(d.data)-d.offset)
	}
	return out, nil
}

type indexDecoder struct {
	data   []byte
	offset int
}

func (d *indexDecoder) isComplete() bool {
	return d.offset == len(d.data)
}

func (d *indexDecoder) decodeDocStats() (DocumentStats, error) {
	docID, err := d.readUint32()
	if err != nil {
		return DocumentStats{}, err
	}
	length, err := d.readUint32()
	if err != nil {
		return DocumentStats{}, err
	}
	numStems, err := d.readUint32()
	if err != nil {
		return DocumentStats{}, err
	}
	// Each stem record takes at least 8 bytes; reject counts the input
	// cannot possibly hold before allocating for them.
	if int(numStems) > (len(d.data)-d.offset)/8 {
		return DocumentStats{}, fmt.Errorf("%w: document %d claims %d stems", ErrCorruptIndex, docID, numStems)
	}

	stats := DocumentStats{
		DocID:     docID,
		Length:    int(length),
		TermFreqs: make(map[string]int, numStems),
	}
	for i := uint32(0); i < numStems; i++ {
		stem, err := d.readString()
		if err != nil {
			return DocumentStats{}, err
		}
		freq, err := d.readUint32()
		if err != nil {
			return DocumentStats{}, err
		}
		stats.TermFreqs[stem] = int(freq)
	}
	return stats, nil
}

func (d *indexDecoder) decodeTerm() (termEntry, error) {
	stem, err := d.readString()
	if err != nil {
		return termEntry{}, err
	}
	data, err := d.readBytes()
	if err != nil {
		return termEntry{}, err
	}

	docs := roaring.NewBitmap()
	if err := docs.UnmarshalBinary(data); err != nil {
		return termEntry{}, fmt.Errorf("%w: bitmap of %q: %v", ErrCorruptIndex, stem, err)
	}
	return termEntry{stem: stem, docs: docs}, nil
}

func (d *indexDecoder) readN(n int) ([]byte, error) {
	if n < 0 || len(d.data)-d.offset < n {
		return nil, fmt.Errorf("%w: unexpected end of data at offset %d", ErrCorruptIndex, d.offset)
	}
	out := d.data[d.offset : d.offset+n]
	d.offset += n
	return out, nil
}

func (d *indexDecoder) readUint16() (uint16, error) {
	b, err := d.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *indexDecoder) readUint32() (uint32, error) {
	b, err := d.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *indexDecoder) readUint64() (uint64, error) {
	b, err := d.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readBytes reads a length-prefixed byte string.
func (d *indexDecoder) readBytes() ([]byte, error) {
	n, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(len(d.data)-d.offset) {
		return nil, fmt.Errorf("%w: length %d exceeds remaining data at offset %d", ErrCorruptIndex, n, d.offset)
	}
	return d.readN(int(n))
}

func (d *indexDecoder) readString() (string, error) {
	b, err := d.readBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
