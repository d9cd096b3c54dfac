package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoKeywords is returned when a keyword source yields nothing.
var ErrNoKeywords = errors.New("keyword list is empty")

// LoadKeywords reads keywords from a plain text file, one per line,
// skipping blank lines. An empty result is a configuration error.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyword file: %w", err)
	}
	defer f.Close()

	var keywords []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			keywords = append(keywords, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read keyword file: %w", err)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoKeywords, path)
	}
	return keywords, nil
}

// ParseKeywords splits an inline comma-separated keyword list.
func ParseKeywords(s string) ([]string, error) {
	keywords := splitList(s)
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}
	return keywords, nil
}
