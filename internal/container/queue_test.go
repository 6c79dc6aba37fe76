package container

import (
	"reflect"
	"testing"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue(1, 2)
	q.Enqueue(3)

	if got := q.Slice(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("unexpected slice %v", got)
	}

	for _, want := range []int{1, 2, 3} {
		got, ok := q.Dequeue()
		if !ok || got != want {
			t.Fatalf("Dequeue = %d/%v, want %d", got, ok, want)
		}
	}
	if !q.IsEmpty() {
		t.Fatalf("expected empty queue")
	}
}

func TestQueue_EmptyReturnsDefault(t *testing.T) {
	var q Queue[string]

	if v, ok := q.Dequeue(); ok || v != "" {
		t.Fatalf("expected zero/false from empty Dequeue")
	}
	if v, ok := q.Peek(); ok || v != "" {
		t.Fatalf("expected zero/false from empty Peek")
	}
}

func TestQueue_ReuseAfterDrain(t *testing.T) {
	q := NewQueue[int]()
	q.Enqueue(1)
	q.Dequeue()
	q.Enqueue(2)
	q.Enqueue(3)

	if v, _ := q.Peek(); v != 2 {
		t.Fatalf("expected head 2, got %d", v)
	}
	if q.Len() != 2 {
		t.Fatalf("expected len 2, got %d", q.Len())
	}
	if !q.Contains(3, func(a, b int) bool { return a == b }) {
		t.Fatalf("expected Contains(3)")
	}

	q.Clear()
	if q.Len() != 0 || len(q.Slice()) != 0 {
		t.Fatalf("expected empty after Clear")
	}
}
