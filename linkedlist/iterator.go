package linkedlist

// Iterator is a weak position reference into a List. It does not keep the
// list alive and it does not survive structural mutation through any route
// other than its own Remove; after such a mutation, discard the iterator and
// create a new one. Multiple read-only iterators over the same list are
// fine.
type Iterator[T any] struct {
	list    *List[T]
	current *node[T]
}

// Iterate returns an iterator positioned at the head of the list, or an
// invalid iterator if the list is empty. Returns nil if the list is nil.
func (l *List[T]) Iterate() *Iterator[T] {
	if l == nil {
		return nil
	}
	return &Iterator[T]{list: l, current: l.head}
}

// Valid reports whether the iterator is positioned at a real node.
func (it *Iterator[T]) Valid() bool {
	return it != nil && it.current != nil
}

// Get returns a pointer to the payload slot of the current node, through
// which the payload may be mutated in place. Returns nil if the iterator is
// invalid.
func (it *Iterator[T]) Get() *T {
	if it == nil || it.current == nil {
		return nil
	}
	return &it.current.payload
}

// Remove unlinks the current node and returns its payload. The iterator is
// left in exactly one of three states:
//
//   - the removed node was the sole element: the iterator becomes invalid
//     and the list is empty;
//   - the removed node was the tail of a list with two or more elements: the
//     iterator now references the removed node's former predecessor;
//   - otherwise: the iterator now references the removed node's former
//     successor.
//
// Returns the zero value and false, with no mutation, if the iterator is
// invalid.
func (it *Iterator[T]) Remove() (payload T, ok bool) {
	if it == nil || it.current == nil {
		return
	}

	switch it.current {
	case it.list.head:
		payload, _ = it.list.PopHead()
		it.current = it.list.head
	case it.list.tail:
		payload, _ = it.list.PopTail()
		it.current = it.list.tail
	default:
		n := it.current
		n.prev.next = n.next
		n.next.prev = n.prev
		it.list.count--
		it.current = n.next
		payload = n.payload
		n.next, n.prev = nil, nil
	}

	return payload, true
}

// Next advances the iterator one node towards the tail. Returns whether the
// iterator is valid afterwards; calling Next on an already-invalid iterator
// fails.
func (it *Iterator[T]) Next() bool {
	if it == nil || it.current == nil {
		return false
	}
	it.current = it.current.next
	return it.current != nil
}

// Prev moves the iterator one node towards the head. Returns whether the
// iterator is valid afterwards; calling Prev on an already-invalid iterator
// fails.
func (it *Iterator[T]) Prev() bool {
	if it == nil || it.current == nil {
		return false
	}
	it.current = it.current.prev
	return it.current != nil
}

// Rewind repositions the iterator at the head of the list. Fails if the
// list is empty.
func (it *Iterator[T]) Rewind() bool {
	if it == nil || it.list.count == 0 {
		return false
	}
	it.current = it.list.head
	return true
}

// FastForward repositions the iterator at the tail of the list. Fails if
// the list is empty.
func (it *Iterator[T]) FastForward() bool {
	if it == nil || it.list.count == 0 {
		return false
	}
	it.current = it.list.tail
	return true
}
