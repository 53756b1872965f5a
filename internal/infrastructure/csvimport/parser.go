package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const encodingCheckSize = 4096

// Parser reads a CSV file with a header row into named rows
type Parser struct {
	delimiter rune
	fallback  encoding.Encoding
	reader    *csv.Reader
	headers   []string
	headerMap map[string]int
	line      int
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *Parser) {
		p.delimiter = d
	}
}

// WithFallbackEncoding decodes input that is not valid UTF-8 with enc.
// Spreadsheet exports in legacy code pages (e.g. charmap.Windows1254) need this.
func WithFallbackEncoding(enc encoding.Encoding) ParserOption {
	return func(p *Parser) {
		p.fallback = enc
	}
}

// NewParser strips a UTF-8 BOM, checks the encoding and reads the header row
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		delimiter: ',',
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	buf := bufio.NewReaderSize(r, encodingCheckSize)
	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	content, err := buf.Peek(encodingCheckSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read file for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}

	var src io.Reader = buf
	if !validUTF8Prefix(content) {
		if p.fallback == nil {
			return nil, ErrInvalidEncoding
		}
		src = transform.NewReader(buf, p.fallback.NewDecoder())
	}

	p.reader = csv.NewReader(src)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = true
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = -1

	if err := p.readHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// validUTF8Prefix checks b, ignoring a rune cut off at the end of the peeked window
func validUTF8Prefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			return !utf8.FullRune(b[len(b)-i:]) && utf8.Valid(b[:len(b)-i])
		}
	}
	return false
}

func (p *Parser) readHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.line = 1
	p.headers = make([]string, 0, len(record))
	for i, h := range record {
		name := strings.ToLower(strings.TrimSpace(h))
		p.headers = append(p.headers, name)
		if name != "" {
			if _, dup := p.headerMap[name]; !dup {
				p.headerMap[name] = i
			}
		}
	}
	if len(p.headerMap) == 0 {
		return ErrMissingHeader
	}
	return nil
}

// Headers returns the normalized header names
func (p *Parser) Headers() []string {
	return p.headers
}

// Has reports whether the header contains column
func (p *Parser) Has(column string) bool {
	_, ok := p.headerMap[column]
	return ok
}

// Require returns a RowError for the header line naming every missing column
func (p *Parser) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !p.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return RowError{
		Line:    1,
		Message: fmt.Sprintf("%s: %s", ErrMissingHeader.Error(), strings.Join(missing, ", ")),
	}
}

// Row is one data record keyed by header name
type Row struct {
	Line   int
	values map[string]string
}

// Get returns the trimmed value of column, or "" when absent
func (r *Row) Get(column string) string {
	return r.values[column]
}

// IsEmpty reports whether every value in the row is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next data row, or io.EOF after the last one.
// Malformed records are returned as a RowError so the caller can continue.
func (p *Parser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.line++
	if err != nil {
		var perr *csv.ParseError
		line := p.line
		if errors.As(err, &perr) {
			line = perr.Line
			p.line = perr.Line
		}
		return nil, RowError{Line: line, Message: err.Error()}
	}
	if start, _ := p.reader.FieldPos(0); start > 0 {
		p.line = start
	}

	row := &Row{Line: p.line, values: make(map[string]string, len(p.headerMap))}
	for name, idx := range p.headerMap {
		if idx < len(record) {
			row.values[name] = strings.TrimSpace(record[idx])
		}
	}
	return row, nil
}
