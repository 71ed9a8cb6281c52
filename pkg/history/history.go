// Package history implements a bounded linear undo/redo log.
//
// Records are reversible pairs of closures. The log keeps a single sequence
// with a cursor: records before the cursor can be undone, records after it
// can be redone. Adding a record discards the redo branch.
package history

import "sync"

// Record is one reversible change.
type Record struct {
	// Redo applies the change. It is also called when the record is added.
	Redo func()
	// Undo reverts the change.
	Undo func()
}

// Log is a bounded undo/redo history.
//
// Bookkeeping is guarded by a mutex that is released while a record's
// closures run, so a closure may itself add records or read the lengths.
type Log struct {
	mu sync.Mutex

	records []Record
	offset  int // number of records currently undone
	depth   int
}

// New creates a log that keeps at most depth undoable records. A depth of
// zero or less means unbounded.
func New(depth int) *Log {
	if depth < 0 {
		depth = 0
	}
	return &Log{depth: depth}
}

// Depth returns the capacity, or 0 when unbounded.
func (l *Log) Depth() int {
	return l.depth
}

// Add drops the redo branch, evicts the oldest record when the log is full,
// appends r and then applies it by calling r.Redo.
func (l *Log) Add(r Record) {
	l.mu.Lock()
	l.records = l.records[:len(l.records)-l.offset]
	if l.depth > 0 && len(l.records) >= l.depth {
		excess := len(l.records) - l.depth + 1
		l.records = append(l.records[:0:0], l.records[excess:]...)
	}
	l.records = append(l.records, r)
	l.offset = 0
	l.mu.Unlock()

	if r.Redo != nil {
		r.Redo()
	}
}

// Undo reverts the most recent record that has not been undone yet. It does
// nothing when there is nothing to undo.
func (l *Log) Undo() {
	l.mu.Lock()
	if l.offset >= len(l.records) {
		l.mu.Unlock()
		return
	}
	r := l.records[len(l.records)-l.offset-1]
	l.offset++
	l.mu.Unlock()

	if r.Undo != nil {
		r.Undo()
	}
}

// Redo re-applies the most recently undone record. It does nothing when
// there is nothing to redo.
func (l *Log) Redo() {
	l.mu.Lock()
	if l.offset == 0 {
		l.mu.Unlock()
		return
	}
	l.offset--
	r := l.records[len(l.records)-l.offset-1]
	l.mu.Unlock()

	if r.Redo != nil {
		r.Redo()
	}
}

// Clean forgets every record without calling any of them.
func (l *Log) Clean() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.offset = 0
}

// UndoLength returns how many records can be undone.
func (l *Log) UndoLength() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records) - l.offset
}

// RedoLength returns how many records can be redone.
func (l *Log) RedoLength() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	return l.UndoLength() > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	return l.RedoLength() > 0
}
