package container

// PriorityQueue is a linked list kept sorted by ascending priority.
// Elements with equal priority leave in insertion order.
type PriorityQueue[T any] struct {
	head *node[T]
	n    int
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

// Enqueue inserts v after every element whose priority is <= priority.
func (pq *PriorityQueue[T]) Enqueue(v T, priority float64) {
	nd := &node[T]{value: v, priority: priority}
	pq.n++

	if pq.head == nil || priority < pq.head.priority {
		nd.next = pq.head
		pq.head = nd
		return
	}

	cur := pq.head
	for cur.next != nil && cur.next.priority <= priority {
		cur = cur.next
	}
	nd.next = cur.next
	cur.next = nd
}

// Dequeue removes the element with the lowest priority.
func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	if pq.head == nil {
		var zero T
		return zero, false
	}
	nd := pq.head
	pq.head = nd.next
	pq.n--
	return nd.value, true
}

// DequeueMax removes the element with the highest priority. Among equal
// priorities the most recently enqueued one is removed.
func (pq *PriorityQueue[T]) DequeueMax() (T, bool) {
	if pq.head == nil {
		var zero T
		return zero, false
	}
	if pq.head.next == nil {
		return pq.Dequeue()
	}
	prev := pq.head
	for prev.next.next != nil {
		prev = prev.next
	}
	last := prev.next
	prev.next = nil
	pq.n--
	return last.value, true
}

func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if pq.head == nil {
		var zero T
		return zero, false
	}
	return pq.head.value, true
}

func (pq *PriorityQueue[T]) PeekPriority() (float64, bool) {
	if pq.head == nil {
		return 0, false
	}
	return pq.head.priority, true
}

func (pq *PriorityQueue[T]) Len() int { return pq.n }

func (pq *PriorityQueue[T]) IsEmpty() bool { return pq.n == 0 }

func (pq *PriorityQueue[T]) Clear() {
	pq.head, pq.n = nil, 0
}

// Slice returns the elements in dequeue order.
func (pq *PriorityQueue[T]) Slice() []T {
	out := make([]T, 0, pq.n)
	for nd := pq.head; nd != nil; nd = nd.next {
		out = append(out, nd.value)
	}
	return out
}
