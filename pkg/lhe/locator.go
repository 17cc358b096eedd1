package lhe

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// NoLine is returned by the locators when the requested event has no
// opening tag in the file.
const NoLine = -1

// maxLineSize bounds a single raw line. LHE records are short but header
// blocks may embed long generator cards.
const maxLineSize = 4 << 20

// IsEventStart reports whether line holds an opening <event> tag, with or
// without attributes.
func IsEventStart(line string) bool {
	return indexOpenTag(line) >= 0
}

// indexOpenTag returns the index of the first opening event tag of s, or -1.
// A tag name cut off at the end of s does not count.
func indexOpenTag(s string) int {
	off := 0
	for {
		i := strings.Index(s[off:], "<event")
		if i < 0 {
			return -1
		}
		at := off + i
		off = at + len("<event")
		if off == len(s) {
			return -1
		}
		switch s[off] {
		case '>', ' ', '\t', '\r', '\n':
			return at
		}
	}
}

// LocateEventLine returns the 1-based line number of the line holding the
// n-th opening event tag read from r, or NoLine when r holds fewer than n.
// Lines with several tags count once.
func LocateEventLine(r io.Reader, n int) (int, error) {
	if n < 1 {
		return NoLine, nil
	}

	count := 0
	line := 0
	err := scanLines(r, func(text string) bool {
		line++
		if IsEventStart(text) {
			count++
		}
		return count < n
	})
	if err != nil {
		return NoLine, err
	}
	if count < n {
		return NoLine, nil
	}
	return line, nil
}

// LocateEventLineInFile is LocateEventLine over the file at path.
func LocateEventLineInFile(path string, n int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return NoLine, err
	}
	defer f.Close()

	return LocateEventLine(f, n)
}

// CountEventTags returns the number of lines of r holding an opening event
// tag.
func CountEventTags(r io.Reader) (int, error) {
	count := 0
	err := scanLines(r, func(text string) bool {
		if IsEventStart(text) {
			count++
		}
		return true
	})
	return count, err
}

// scanLines feeds each line of r to fn until fn returns false.
func scanLines(r io.Reader, fn func(string) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if !fn(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}
