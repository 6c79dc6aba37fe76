package container

import "iter"

// Dictionary is a map that remembers insertion order.
type Dictionary[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

func NewDictionary[K comparable, V any]() *Dictionary[K, V] {
	return &Dictionary[K, V]{index: map[K]int{}}
}

func (d *Dictionary[K, V]) lazyInit() {
	if d.index == nil {
		d.index = map[K]int{}
	}
}

// Add inserts k only when it is not present yet.
func (d *Dictionary[K, V]) Add(k K, v V) bool {
	d.lazyInit()
	if _, ok := d.index[k]; ok {
		return false
	}
	d.index[k] = len(d.keys)
	d.keys = append(d.keys, k)
	d.vals = append(d.vals, v)
	return true
}

// Set inserts or overwrites. An overwritten key keeps its position.
func (d *Dictionary[K, V]) Set(k K, v V) {
	d.lazyInit()
	if i, ok := d.index[k]; ok {
		d.vals[i] = v
		return
	}
	d.Add(k, v)
}

func (d *Dictionary[K, V]) Get(k K) (V, bool) {
	if i, ok := d.index[k]; ok {
		return d.vals[i], true
	}
	var zero V
	return zero, false
}

func (d *Dictionary[K, V]) GetOrDefault(k K, def V) V {
	if v, ok := d.Get(k); ok {
		return v
	}
	return def
}

func (d *Dictionary[K, V]) Remove(k K) bool {
	i, ok := d.index[k]
	if !ok {
		return false
	}
	delete(d.index, k)

	d.keys = append(d.keys[:i], d.keys[i+1:]...)
	d.vals = append(d.vals[:i], d.vals[i+1:]...)
	for j := i; j < len(d.keys); j++ {
		d.index[d.keys[j]] = j
	}
	return true
}

func (d *Dictionary[K, V]) ContainsKey(k K) bool {
	_, ok := d.index[k]
	return ok
}

// ContainsValue scans values with eq.
func (d *Dictionary[K, V]) ContainsValue(v V, eq func(a, b V) bool) bool {
	for _, x := range d.vals {
		if eq(x, v) {
			return true
		}
	}
	return false
}

func (d *Dictionary[K, V]) Keys() []K {
	out := make([]K, len(d.keys))
	copy(out, d.keys)
	return out
}

func (d *Dictionary[K, V]) Values() []V {
	out := make([]V, len(d.vals))
	copy(out, d.vals)
	return out
}

// All iterates entries in insertion order.
func (d *Dictionary[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range d.keys {
			if !yield(k, d.vals[i]) {
				return
			}
		}
	}
}

func (d *Dictionary[K, V]) Len() int { return len(d.keys) }

func (d *Dictionary[K, V]) Clear() {
	d.index = map[K]int{}
	d.keys = nil
	d.vals = nil
}
