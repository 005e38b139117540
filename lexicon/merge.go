package lexicon

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"
)

// MergeLines collects the non-empty lines of every dictionary and sorts them.
// Lines are kept verbatim, so identical entries from two sources both survive.
func MergeLines(readers ...io.Reader) ([]string, error) {
	var lines []string
	for _, r := range readers {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	sort.Strings(lines)
	return lines, nil
}

// MergeFiles is MergeLines over file paths.
func MergeFiles(paths ...string) ([]string, error) {
	readers := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		readers = append(readers, f)
	}
	return MergeLines(readers...)
}

// WriteLines writes lines separated by newlines, without a trailing newline.
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates path and writes lines into it.
func WriteFile(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteLines(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
