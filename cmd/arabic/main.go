// Command arabic analyzes Arabic text from its arguments or stdin and prints
// the cleaned words and stems.
//
//	arabic -json "الكتب في المكتبة"
//	echo "والكتب" | arabic -report results.txt
//
// With -corpus, every non-blank line of the file is indexed as one document
// (numbered from 1) and the text is ranked against them instead, keeping at
// most max_results matches:
//
//	arabic -corpus books.txt "الكتب العربية"
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wizenheimer/arabic"
)

// errNoText is reported when the input holds nothing but whitespace.
var errNoText = errors.New("please provide some Arabic text")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "arabic: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("arabic", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	reportPath := fs.String("report", "", "append a dated report to this file")
	asJSON := fs.Bool("json", false, "print the analysis result as JSON")
	corpusPath := fs.String("corpus", "", "rank the text against the lines of this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := arabic.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	text, err := readText(fs.Args(), stdin)
	if err != nil {
		return err
	}

	if *corpusPath != "" {
		return search(cfg, *corpusPath, text, *asJSON, stdout)
	}

	result := arabic.Analyze(text)
	slog.Debug("analyzed input",
		slog.Int("original_len", result.OriginalLen),
		slog.Int("word_count", result.WordCount))

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		fmt.Fprintf(stdout, "الكلمات المهمة: %s\n", strings.Join(result.CleanedWords, ", "))
		fmt.Fprintf(stdout, "الجذور المستخرجة: %s\n", strings.Join(result.Stems, ", "))
	}

	if *reportPath != "" {
		if err := arabic.AppendReport(*reportPath, text, result, time.Now()); err != nil {
			return err
		}
		slog.Info("report saved", slog.String("path", *reportPath))
	}
	return nil
}

// search indexes the lines of the corpus file and prints the matches of
// query, best first, as "docID<TAB>score<TAB>line".
func search(cfg arabic.Config, corpusPath, query string, asJSON bool, stdout io.Writer) error {
	data, err := os.ReadFile(corpusPath)
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	idx := arabic.NewInvertedIndexWithConfig(cfg)
	lines := make(map[uint32]string)
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		docID := uint32(i + 1)
		idx.Index(docID, line)
		lines[docID] = strings.TrimSpace(line)
	}

	matches := idx.Search(query)
	slog.Debug("ranked corpus",
		slog.Int("documents", idx.Len()),
		slog.Int("matches", len(matches)))

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(matches); err != nil {
			return fmt.Errorf("encode matches: %w", err)
		}
		return nil
	}

	for _, m := range matches {
		fmt.Fprintf(stdout, "%d\t%.4f\t%s\n", m.DocID, m.Score, lines[m.DocID])
	}
	return nil
}

// readText joins the positional arguments, or reads stdin when there are
// none. Whitespace-only input is rejected.
func readText(args []string, stdin io.Reader) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", errNoText
	}
	return text, nil
}
