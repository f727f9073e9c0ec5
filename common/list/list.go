/*
 * Cadence - The resource-oriented smart contract programming language
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


// Package list implements a generic doubly linked list.
package list

// Element is an element of a linked list.
type Element[T any] struct {
	next, prev *Element[T]

	// list is the list this element belongs to
	list *List[T]

	Value T
}

// Next returns the next list element or nil.
func (e *Element[T]) Next() *Element[T] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// Prev returns the previous list element or nil.
func (e *Element[T]) Prev() *Element[T] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// List is a doubly linked list.
// The zero value is an empty list ready to use.
type List[T any] struct {
	// root is the sentinel element: root.next is the front, root.prev is the back
	root Element[T]
	len  int
}

// Init initializes or clears the list.
func (l *List[T]) Init() *List[T] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

// New returns an initialized list.
func New[T any]() *List[T] {
	return new(List[T]).Init()
}

// Len returns the number of elements of the list.
func (l *List[T]) Len() int {
	return l.len
}

// Front returns the first element of the list or nil if the list is empty.
func (l *List[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// Back returns the last element of the list or nil if the list is empty.
func (l *List[T]) Back() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.Init()
	}
}

func (l *List[T]) insertValue(value T, at *Element[T]) *Element[T] {
	e := &Element[T]{
		Value: value,
		prev:  at,
		next:  at.next,
		list:  l,
	}
	e.prev.next = e
	e.next.prev = e
	l.len++
	return e
}

// PushFront inserts a new element with the given value at the front of the list.
func (l *List[T]) PushFront(value T) *Element[T] {
	l.lazyInit()
	return l.insertValue(value, &l.root)
}

// PushBack inserts a new element with the given value at the back of the list.
func (l *List[T]) PushBack(value T) *Element[T] {
	l.lazyInit()
	return l.insertValue(value, l.root.prev)
}

// Remove removes the element from the list, if it is an element of the list,
// and returns its value.
func (l *List[T]) Remove(e *Element[T]) T {
	if e.list == l {
		e.prev.next = e.next
		e.next.prev = e.prev
		// avoid memory leaks
		e.next = nil
		e.prev = nil
		e.list = nil
		l.len--
	}
	return e.Value
}
