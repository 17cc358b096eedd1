package lhe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const (
	headerFields   = 6
	particleFields = 13
)

// bareRoot matches a root tag without attributes. lhef indexes the first
// attribute of the root unconditionally, so such files get version="1.0".
var bareRoot = regexp.MustCompile(`<LesHouchesEvents\s*>`)

// recordReader streams an LHE file line by line and holds back each <event>
// block until its record has the shape lhef expects. lhef prints malformed
// records to os.Stdout before failing; a block rejected here never reaches
// it, and the read error carries the line of the block instead.
type recordReader struct {
	src *bufio.Reader

	pending []byte
	err     error

	line      int
	rootSeen  bool
	inComment bool

	inBlock   bool
	blockLine int
	block     strings.Builder
	payload   strings.Builder
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{src: bufio.NewReader(r)}
}

func (r *recordReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fill()
	}

	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *recordReader) fill() {
	raw, err := r.src.ReadString('\n')
	if raw != "" {
		r.line++
		r.feed(raw)
	}
	if err == nil || r.err != nil {
		return
	}
	if r.inBlock {
		// Unterminated block: hand it over and let the XML layer fail.
		r.pending = append(r.pending, r.block.String()...)
		r.inBlock = false
	}
	r.err = err
}

func (r *recordReader) feed(raw string) {
	if !r.rootSeen && !r.inBlock {
		if loc := bareRoot.FindStringIndex(raw); loc != nil {
			raw = raw[:loc[0]] + `<LesHouchesEvents version="1.0">` + raw[loc[1]:]
			r.rootSeen = true
		} else if strings.Contains(raw, "<LesHouchesEvents") {
			r.rootSeen = true
		}
	}

	text := raw
	if !r.inBlock {
		text = r.visible(raw)
		i := indexOpenTag(text)
		if i < 0 {
			r.pending = append(r.pending, raw...)
			return
		}
		r.inBlock = true
		r.blockLine = r.line
		r.block.Reset()
		r.payload.Reset()
		text = text[i:]
	}
	r.block.WriteString(raw)
	r.payload.WriteString(text)

	if !strings.Contains(text, "</event>") {
		return
	}
	r.inBlock = false
	if err := checkRecord(r.payload.String()); err != nil {
		r.err = fmt.Errorf("event record at line %d: %w", r.blockLine, err)
		return
	}
	r.pending = append(r.pending, r.block.String()...)
}

// visible returns the part of s outside XML comments.
func (r *recordReader) visible(s string) string {
	var b strings.Builder
	for s != "" {
		if r.inComment {
			i := strings.Index(s, "-->")
			if i < 0 {
				break
			}
			s = s[i+len("-->"):]
			r.inComment = false
			continue
		}
		i := strings.Index(s, "<!--")
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i+len("<!--"):]
		r.inComment = true
	}
	return b.String()
}

// checkRecord validates an <event ...> ... </event> block against the layout
// lhef scans: a line break after the tag, a header line of exactly six
// numbers, then one line of exactly thirteen numbers per particle.
func checkRecord(payload string) error {
	start := indexOpenTag(payload)
	end := strings.Index(payload, "</event>")
	if start < 0 || end < 0 {
		return errors.New("missing <event> tags")
	}
	gt := strings.IndexByte(payload[start:], '>')
	if gt < 0 || start+gt > end {
		return errors.New("unterminated <event> tag")
	}

	body := payload[start+gt+1 : end]
	if i := strings.IndexByte(body, '<'); i >= 0 {
		body = body[:i]
	}
	lines := strings.Split(body, "\n")
	if strings.TrimSpace(lines[0]) != "" || len(lines) < 2 {
		return errors.New("event header must start on its own line")
	}

	header := strings.Fields(lines[1])
	if len(header) != headerFields {
		return fmt.Errorf("event header has %d fields, want %d", len(header), headerFields)
	}
	if err := checkFields(header, []int{32, 32}); err != nil {
		return fmt.Errorf("event header: %w", err)
	}

	nup, _ := strconv.Atoi(header[0])
	if nup < 0 || len(lines)-2 < nup {
		return fmt.Errorf("event declares %s particles, found %d lines", header[0], len(lines)-2)
	}
	for i, l := range lines[2 : 2+nup] {
		fields := strings.Fields(l)
		if len(fields) != particleFields {
			return fmt.Errorf("particle %d has %d fields, want %d", i+1, len(fields), particleFields)
		}
		if err := checkFields(fields, []int{64, 32, 32, 32, 32, 32}); err != nil {
			return fmt.Errorf("particle %d: %w", i+1, err)
		}
	}
	return nil
}

// checkFields parses the leading fields as integers of the given bit sizes
// and the rest as floats.
func checkFields(fields []string, ints []int) error {
	for i, f := range fields {
		var err error
		if i < len(ints) {
			_, err = strconv.ParseInt(f, 10, ints[i])
		} else {
			_, err = strconv.ParseFloat(f, 64)
		}
		if err != nil {
			return fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	return nil
}

// guard turns a panic inside the decoder into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("decoder panic: %v", e)
		}
	}()
	return fn()
}
