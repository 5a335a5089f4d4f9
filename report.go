package arabic

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// reportTimeLayout is the timestamp format of report headers.
const reportTimeLayout = "2006-01-02 15:04:05"

// WriteReport writes a dated, human-readable block describing one analysis:
//
//	--- تحليل بتاريخ: 2026-10-14 09:30:00 ---
//	النص الأصلي: <text>
//	عدد الكلمات: <word count>
//	الكلمات النظيفة: <cleaned words, comma separated>
//	الجذور: <stems, comma separated>
//	----------------------------------------
//
// The block starts with a blank line so consecutive reports stay apart.
func WriteReport(w io.Writer, text string, r AnalysisResult, at time.Time) error {
	_, err := fmt.Fprintf(w,
		"\n--- تحليل بتاريخ: %s ---\n"+
			"النص الأصلي: %s\n"+
			"عدد الكلمات: %d\n"+
			"الكلمات النظيفة: %s\n"+
			"الجذور: %s\n"+
			"%s\n",
		at.Format(reportTimeLayout),
		text,
		r.WordCount,
		strings.Join(r.CleanedWords, ", "),
		strings.Join(r.Stems, ", "),
		strings.Repeat("-", 40),
	)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// AppendReport appends a WriteReport block to the file at path, creating it
// when needed.
func AppendReport(path, text string, r AnalysisResult, at time.Time) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	return WriteReport(f, text, r, at)
}
