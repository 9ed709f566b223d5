package internal

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

const maxLineSize = 1024 * 1024

// Lines opens path when iteration starts and yields its trimmed, non-empty
// lines. The file is closed once iteration ends, including on early break.
func Lines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", fmt.Errorf("%w: %s: %w", ErrInputUnavailable, path, err))
			return
		}
		defer f.Close()

		for line, err := range ReaderLines(f) {
			if !yield(line, err) {
				return
			}
		}
	}
}

func ReaderLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("%w: %w", ErrInputUnavailable, err))
		}
	}
}
