package system

import (
	"errors"

	"ns32082/interrupts"
)

// TrapQueue is a bounded FIFO holding the most recent traps
type TrapQueue struct {
	items   []interrupts.Trap
	maxSize int
}

// NewTrapQueue creates a new empty queue.
func NewTrapQueue(maxSize int) *TrapQueue {
	return &TrapQueue{maxSize: maxSize}
}

// Enqueue adds a trap, dropping the oldest one when the queue is full.
func (q *TrapQueue) Enqueue(t interrupts.Trap) {
	if q.maxSize <= 0 {
		return
	}
	if len(q.items) == q.maxSize {
		q.Dequeue()
	}
	q.items = append(q.items, t)
}

// Dequeue removes and returns the trap at the front of the queue.
func (q *TrapQueue) Dequeue() (interrupts.Trap, error) {
	if len(q.items) == 0 {
		return interrupts.Trap{}, errors.New("queue is empty")
	}
	front := q.items[0]
	q.items = q.items[1:]
	return front, nil
}

// Items returns a copy of the queued traps, oldest first
func (q *TrapQueue) Items() []interrupts.Trap {
	return append([]interrupts.Trap(nil), q.items...)
}

// Len is the number of queued traps
func (q *TrapQueue) Len() int {
	return len(q.items)
}

// IsEmpty checks if the queue is empty.
func (q *TrapQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// Clear drops all traps
func (q *TrapQueue) Clear() {
	q.items = nil
}
