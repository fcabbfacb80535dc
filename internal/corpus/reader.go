// Package corpus reads the article dump the engine is built from. Articles
// are separated by a fixed delimiter line; within an article the title is
// everything before the first ".\n" and the remainder is the body.
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

const (
	Delimiter = "---END.OF.DOCUMENT---"

	titleSeparator = ".\n"
	maxArticleSize = 64 << 20
)

// Article is one raw entry of the corpus. An article without a title
// separator has an empty Title and Body.
type Article struct {
	Title string
	Body  string
}

// Scan streams articles from r in corpus order and calls fn for each one,
// including untitled ones. Scanning stops at the first error fn returns.
func Scan(r io.Reader, fn func(Article) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), maxArticleSize)
	sc.Split(splitArticles)
	for sc.Scan() {
		if err := fn(parse(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return apperrors.Newf(apperrors.ErrCorpusUnreadable, "scanning corpus: %v", err)
	}
	return nil
}

// ScanFile opens path and scans it with Scan.
func ScanFile(path string, fn func(Article) error) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.Newf(apperrors.ErrCorpusUnreadable, "opening %s: %v", path, err)
	}
	defer f.Close()
	return Scan(f, fn)
}

// ReadAll collects every article of r.
func ReadAll(r io.Reader) ([]Article, error) {
	var articles []Article
	err := Scan(r, func(a Article) error {
		articles = append(articles, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return articles, nil
}

func parse(raw string) Article {
	title, body, ok := strings.Cut(strings.TrimSpace(raw), titleSeparator)
	if !ok {
		return Article{}
	}
	return Article{Title: title, Body: body}
}

// splitArticles is a bufio.SplitFunc yielding the text between delimiters.
// The trailing piece after the last delimiter is yielded as well, matching a
// plain string split.
func splitArticles(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.Index(data, []byte(Delimiter)); i >= 0 {
		return i + len(Delimiter), data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
