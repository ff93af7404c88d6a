package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Line is a raw corpus line and its 1-based position in the input
type Line struct {
	Number int
	Text   string
}

// ReadLines returns every decodable line of r in order, without its line
// terminator. Lines that are not valid UTF-8 are dropped and counted in
// skipped. A read error from r aborts the whole read.
func ReadLines(r io.Reader) (lines []Line, skipped int, err error) {
	br := bufio.NewReader(r)
	number := 0
	for {
		text, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, skipped, fmt.Errorf("read line %d: %w", number+1, readErr)
		}
		if text == "" && readErr != nil {
			break
		}
		number++
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
		if !utf8.ValidString(text) {
			skipped++
		} else {
			lines = append(lines, Line{Number: number, Text: text})
		}
		if readErr != nil {
			break
		}
	}
	return lines, skipped, nil
}

// Corpus is the parsed content of one TSV input
type Corpus struct {
	Records      []TranslationRecord
	SkippedLines int
}

// ReadCorpus reads and parses a whole TSV corpus
func ReadCorpus(r io.Reader) (*Corpus, error) {
	lines, skipped, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	records, err := ParseRecords(lines)
	if err != nil {
		return nil, err
	}
	return &Corpus{Records: records, SkippedLines: skipped}, nil
}
