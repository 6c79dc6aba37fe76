// Package query evaluates JSONPath expressions against save files.
package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/ports"
)

// ErrNoValue is returned when an expression matches nothing.
var ErrNoValue = errors.New("no value found")

// Get evaluates expr against a JSON document and returns the match as a
// string. Scalars print bare; objects and multi-element arrays print as
// compact JSON.
func Get(doc []byte, expr string) (string, error) {
	v, err := decode(doc)
	if err != nil {
		return "", domain.InvalidInput("query.get", "document is not valid JSON", err)
	}
	return Select(v, expr)
}

// decode keeps numbers as json.Number so large integers print exactly.
func decode(doc []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after document")
	}
	return v, nil
}

// Select evaluates expr against an already decoded document.
func Select(doc any, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", domain.InvalidInput("query.select", "empty jsonpath expression", nil)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", domain.InvalidInput("query.select", fmt.Sprintf("jsonpath %s", expr), err)
	}
	if isEmptyValue(val) {
		return "", &domain.OpError{
			Op:   "query.select",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("%s: %w", expr, ErrNoValue),
		}
	}

	s, err := toString(val)
	if err != nil {
		return "", &domain.OpError{Op: "query.select", Kind: domain.KindExecution, Err: err}
	}
	return s, nil
}

// SlotQuery reads a save slot and queries it. When the slot's data string
// holds JSON it is expanded in place, so $.data.data.level reaches into it.
type SlotQuery struct {
	store ports.SaveStore
}

func NewSlotQuery(store ports.SaveStore) *SlotQuery {
	return &SlotQuery{store: store}
}

func (q *SlotQuery) Execute(slot, expr string) (string, error) {
	f, err := q.store.LoadFile(slot)
	if err != nil {
		return "", err
	}
	return Select(document(f), expr)
}

func document(f domain.SaveFile) map[string]any {
	var payload any = f.Data.Data
	if nested, err := decode([]byte(f.Data.Data)); err == nil {
		payload = nested
	}
	return map[string]any{
		"version":  json.Number(strconv.Itoa(f.Version)),
		"saved_at": f.SavedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		"data": map[string]any{
			"name": f.Data.Name,
			"data": payload,
		},
	}
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// jsonpath wildcards return a slice; a single match prints as itself.
	if arr, ok := v.([]any); ok && len(arr) == 1 {
		return toString(arr[0])
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
