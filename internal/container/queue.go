package container

type node[T any] struct {
	value    T
	priority float64
	next     *node[T]
}

// Queue is a singly linked FIFO queue.
type Queue[T any] struct {
	head *node[T]
	tail *node[T]
	n    int
}

func NewQueue[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, it := range items {
		q.Enqueue(it)
	}
	return q
}

func (q *Queue[T]) Enqueue(v T) {
	nd := &node[T]{value: v}
	if q.tail == nil {
		q.head = nd
	} else {
		q.tail.next = nd
	}
	q.tail = nd
	q.n++
}

func (q *Queue[T]) Dequeue() (T, bool) {
	if q.head == nil {
		var zero T
		return zero, false
	}
	nd := q.head
	q.head = nd.next
	if q.head == nil {
		q.tail = nil
	}
	q.n--
	return nd.value, true
}

func (q *Queue[T]) Peek() (T, bool) {
	if q.head == nil {
		var zero T
		return zero, false
	}
	return q.head.value, true
}

func (q *Queue[T]) Len() int { return q.n }

func (q *Queue[T]) IsEmpty() bool { return q.n == 0 }

func (q *Queue[T]) Clear() {
	q.head, q.tail, q.n = nil, nil, 0
}

// Slice returns the elements front to back.
func (q *Queue[T]) Slice() []T {
	out := make([]T, 0, q.n)
	for nd := q.head; nd != nil; nd = nd.next {
		out = append(out, nd.value)
	}
	return out
}

func (q *Queue[T]) Contains(v T, eq func(a, b T) bool) bool {
	for nd := q.head; nd != nil; nd = nd.next {
		if eq(nd.value, v) {
			return true
		}
	}
	return false
}
