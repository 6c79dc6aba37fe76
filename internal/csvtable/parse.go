package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

type options struct {
	delim     rune
	header    bool
	trimSpace bool
}

type Option func(*options)

// WithDelimiter fixes the column delimiter instead of guessing it.
func WithDelimiter(r rune) Option {
	return func(o *options) { o.delim = r }
}

// WithHeader controls whether the first row names the columns (default true).
func WithHeader(enabled bool) Option {
	return func(o *options) { o.header = enabled }
}

// WithTrimSpace trims surrounding whitespace from every field.
func WithTrimSpace(enabled bool) Option {
	return func(o *options) { o.trimSpace = enabled }
}

// Parse reads text into a Table. Empty text yields an empty table.
// Line breaks inside quoted fields come back as "\n", including "\r\n".
func Parse(text string, opts ...Option) (*Table, error) {
	o := options{header: true}
	for _, opt := range opts {
		opt(&o)
	}

	text = strings.TrimPrefix(text, "\ufeff")
	if strings.TrimSpace(text) == "" {
		if o.header {
			return NewTable([]string{}, nil), nil
		}
		return NewTable(nil, nil), nil
	}

	if o.delim == 0 {
		o.delim = DetectDelimiter(text)
	}
	if o.delim != ',' && o.delim != ';' && o.delim != '\t' {
		return nil, domain.InvalidInput("csvtable.parse", fmt.Sprintf("unsupported delimiter %q", o.delim), nil)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = o.delim
	r.TrimLeadingSpace = o.trimSpace
	if !o.header {
		r.FieldsPerRecord = -1
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, malformed(err)
	}

	if o.trimSpace {
		for _, rec := range records {
			for i := range rec {
				rec[i] = strings.TrimSpace(rec[i])
			}
		}
	}

	if !o.header {
		return NewTable(nil, records), nil
	}
	return NewTable(records[0], records[1:]), nil
}

// Read parses everything from rd.
func Read(rd io.Reader, opts ...Option) (*Table, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, &domain.OpError{Op: "csvtable.read", Kind: domain.KindExecution, Err: err}
	}
	return Parse(string(b), opts...)
}

// DetectDelimiter picks ',' or ';' by counting unquoted occurrences in the
// first line. Ties go to ','.
func DetectDelimiter(text string) rune {
	commas, semis := 0, 0
	inQuotes := false
	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == '\n' && !inQuotes:
			if semis > commas {
				return ';'
			}
			return ','
		case r == ',' && !inQuotes:
			commas++
		case r == ';' && !inQuotes:
			semis++
		}
	}
	if semis > commas {
		return ';'
	}
	return ','
}

func malformed(err error) error {
	var pe *csv.ParseError
	msg := "read records"
	if errors.As(err, &pe) {
		msg = fmt.Sprintf("line %d, column %d", pe.StartLine, pe.Column)
		err = pe.Err
	}
	return domain.InvalidInput("csvtable.parse", msg, fmt.Errorf("%w: %v", ErrMalformed, err))
}
