package container

import (
	"reflect"
	"testing"
)

func TestDictionary_AddDoesNotOverwrite(t *testing.T) {
	d := NewDictionary[string, int]()
	if !d.Add("a", 1) {
		t.Fatalf("expected first Add to succeed")
	}
	if d.Add("a", 2) {
		t.Fatalf("expected duplicate Add to fail")
	}
	if v, _ := d.Get("a"); v != 1 {
		t.Fatalf("expected a=1, got %d", v)
	}
}

func TestDictionary_SetKeepsPosition(t *testing.T) {
	d := NewDictionary[string, int]()
	d.Set("a", 1)
	d.Set("b", 2)
	d.Set("c", 3)
	d.Set("a", 10)

	if got := d.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected key order %v", got)
	}
	if got := d.Values(); !reflect.DeepEqual(got, []int{10, 2, 3}) {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestDictionary_RemoveReindexes(t *testing.T) {
	d := NewDictionary[string, int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		d.Add(k, i)
	}

	if !d.Remove("b") {
		t.Fatalf("expected remove b")
	}
	if d.Remove("b") {
		t.Fatalf("expected second remove to fail")
	}
	if d.Len() != 3 {
		t.Fatalf("expected len 3, got %d", d.Len())
	}
	if v, ok := d.Get("d"); !ok || v != 3 {
		t.Fatalf("expected d=3 after reindex, got %d/%v", v, ok)
	}

	d.Set("d", 30)
	if got := d.Values(); !reflect.DeepEqual(got, []int{0, 2, 30}) {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestDictionary_MissingAndDefaults(t *testing.T) {
	var d Dictionary[string, string]

	if v, ok := d.Get("x"); ok || v != "" {
		t.Fatalf("expected zero/false on missing key")
	}
	if got := d.GetOrDefault("x", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	d.Add("x", "y")
	if !d.ContainsKey("x") {
		t.Fatalf("expected ContainsKey")
	}
	if !d.ContainsValue("y", func(a, b string) bool { return a == b }) {
		t.Fatalf("expected ContainsValue")
	}

	d.Clear()
	if d.Len() != 0 || d.ContainsKey("x") {
		t.Fatalf("expected empty after Clear")
	}
}

func TestDictionary_AllStopsEarly(t *testing.T) {
	d := NewDictionary[int, int]()
	for i := 0; i < 5; i++ {
		d.Add(i, i*i)
	}

	var seen []int
	for k, v := range d.All() {
		if k == 3 {
			break
		}
		seen = append(seen, v)
	}
	if !reflect.DeepEqual(seen, []int{0, 1, 4}) {
		t.Fatalf("unexpected iteration %v", seen)
	}
}
