package faq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV builds a matcher from a knowledge-base export with the header
// kind,key,keywords,response. kind is "rule", "answer" or "fallback"; rule keywords are
// separated by "|". Rows keep their file order, which is the match priority.
func LoadCSV(r io.Reader) (*Matcher, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range []string{"kind", "key"} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var (
		rules    []Rule
		answers  []Answer
		fallback = DefaultFallback
		line     = 1
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		kind := strings.ToLower(pick(record, index, "kind"))
		key := pick(record, index, "key")
		switch kind {
		case "":
			continue
		case "rule":
			rules = append(rules, Rule{Key: key, Keywords: strings.Split(pick(record, index, "keywords"), "|")})
		case "answer":
			answers = append(answers, Answer{Key: key, Response: pick(record, index, "response")})
		case "fallback":
			fallback = pick(record, index, "response")
		default:
			return nil, fmt.Errorf("row %d: unknown kind %q", line, kind)
		}
	}
	return New(rules, answers, fallback)
}

// LoadFile is LoadCSV over a file on disk.
func LoadFile(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
