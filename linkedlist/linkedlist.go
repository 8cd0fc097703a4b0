// Package linkedlist provides a doubly linked list with a bidirectional
// iterator that supports in-place removal.
package linkedlist

type node[T any] struct {
	next, prev *node[T]
	payload    T
}

// List is an ordered, mutable sequence of payloads with O(1) access to both
// ends. Create lists with New; the zero value works but a nil *List is also
// accepted everywhere and reported as an error result.
type List[T any] struct {
	head, tail *node[T]
	count      int
}

// New returns a new empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Destroy empties the list, passing every remaining payload to payloadFree
// in head-to-tail order. Pass nil if the payloads need no teardown. No-op on
// a nil list.
//
// Doesn't use an Iterator so that the walk also severs the node links,
// leaving nothing for a stale iterator to resurrect.
func (l *List[T]) Destroy(payloadFree func(T)) {
	if l == nil {
		return
	}

	for curr := l.head; curr != nil; {
		if payloadFree != nil {
			payloadFree(curr.payload)
		}
		next := curr.next
		curr.next, curr.prev = nil, nil
		curr = next
	}

	l.head, l.tail, l.count = nil, nil, 0
}

// Len returns the number of elements in the list, or -1 if the list is nil.
func (l *List[T]) Len() int {
	if l == nil {
		return -1
	}
	return l.count
}

// Prepend inserts payload at the head of the list. Returns false without
// mutating anything if the list is nil.
func (l *List[T]) Prepend(payload T) bool {
	if l == nil {
		return false
	}

	n := &node[T]{next: l.head, payload: payload}
	if l.count == 0 {
		l.tail = n
	} else {
		l.head.prev = n
	}
	l.head = n
	l.count++
	return true
}

// Append inserts payload at the tail of the list. Returns false without
// mutating anything if the list is nil.
func (l *List[T]) Append(payload T) bool {
	if l == nil {
		return false
	}

	n := &node[T]{prev: l.tail, payload: payload}
	if l.count == 0 {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.count++
	return true
}

// PopHead removes and returns the payload at the head of the list. Returns
// the zero value and false if the list is nil or empty; the list is not
// modified on failure.
func (l *List[T]) PopHead() (payload T, ok bool) {
	if l == nil || l.count == 0 {
		return
	}

	n := l.head
	if l.count != 1 {
		l.head = n.next
		l.head.prev = nil
	} else {
		l.head, l.tail = nil, nil
	}
	n.next = nil
	l.count--
	return n.payload, true
}

// PopTail removes and returns the payload at the tail of the list. Returns
// the zero value and false if the list is nil or empty; the list is not
// modified on failure.
func (l *List[T]) PopTail() (payload T, ok bool) {
	if l == nil || l.count == 0 {
		return
	}

	n := l.tail
	if l.count != 1 {
		l.tail = n.prev
		l.tail.next = nil
	} else {
		l.head, l.tail = nil, nil
	}
	n.prev = nil
	l.count--
	return n.payload, true
}
