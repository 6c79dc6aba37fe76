package csvtable

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
)

// Write emits t with the given delimiter, quoting fields that contain the
// delimiter, quotes or newlines. A record made of one empty field is written
// as "" so it does not turn into a blank line, which readers skip.
func Write(w io.Writer, t *Table, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	records := t.rows
	if len(t.header) > 0 {
		records = append([][]string{t.header}, t.rows...)
	}
	for _, rec := range records {
		if err := writeRecord(w, cw, rec); err != nil {
			return &domain.OpError{Op: "csvtable.write", Kind: domain.KindExecution, Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &domain.OpError{Op: "csvtable.write", Kind: domain.KindExecution, Err: err}
	}
	return nil
}

func writeRecord(w io.Writer, cw *csv.Writer, rec []string) error {
	if len(rec) != 1 || rec[0] != "" {
		return cw.Write(rec)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

// Format renders t as text.
func Format(t *Table, delim rune) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, delim); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Load parses a CSV file.
func Load(path string, opts ...Option) (*Table, error) {
	text, err := fileio.ReadText(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(text, opts...)
	if err != nil {
		if oe, ok := err.(*domain.OpError); ok {
			oe.Path = path
		}
		return nil, err
	}
	return t, nil
}

// Save writes t to path.
func Save(path string, t *Table, delim rune) error {
	text, err := Format(t, delim)
	if err != nil {
		return err
	}
	return fileio.WriteText(path, text)
}
