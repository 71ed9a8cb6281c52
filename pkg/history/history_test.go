package history

import "testing"

// counter is a tiny reversible target for the tests.
type counter struct {
	value int
	log   []string
}

func (c *counter) set(v int) Record {
	old := c.value
	return Record{
		Redo: func() { c.value = v; c.log = append(c.log, "redo") },
		Undo: func() { c.value = old; c.log = append(c.log, "undo") },
	}
}

func TestAddAppliesRecord(t *testing.T) {
	c := &counter{}
	h := New(10)

	h.Add(c.set(1))

	if c.value != 1 {
		t.Errorf("value = %d, want 1", c.value)
	}
	if h.UndoLength() != 1 || h.RedoLength() != 0 {
		t.Errorf("lengths = %d/%d, want 1/0", h.UndoLength(), h.RedoLength())
	}
}

func TestUndoRedo(t *testing.T) {
	c := &counter{}
	h := New(10)
	h.Add(c.set(1))
	h.Add(c.set(2))
	h.Add(c.set(3))

	h.Undo()
	if c.value != 2 {
		t.Fatalf("after one undo value = %d, want 2", c.value)
	}
	h.Undo()
	h.Undo()
	if c.value != 0 {
		t.Fatalf("after three undos value = %d, want 0", c.value)
	}
	if !h.CanRedo() || h.CanUndo() {
		t.Error("expected only redo to be available")
	}

	h.Redo()
	h.Redo()
	if c.value != 2 {
		t.Errorf("after two redos value = %d, want 2", c.value)
	}
	if h.UndoLength() != 2 || h.RedoLength() != 1 {
		t.Errorf("lengths = %d/%d, want 2/1", h.UndoLength(), h.RedoLength())
	}
}

func TestNoOps(t *testing.T) {
	c := &counter{}
	h := New(3)

	h.Undo()
	h.Redo()
	if len(c.log) != 0 {
		t.Errorf("empty history called records: %v", c.log)
	}

	h.Add(c.set(5))
	h.Redo()
	if len(c.log) != 1 {
		t.Errorf("redo with nothing undone called records: %v", c.log)
	}

	h.Undo()
	h.Undo()
	if len(c.log) != 2 || c.value != 0 {
		t.Errorf("second undo should be a no-op: %v value=%d", c.log, c.value)
	}
}

func TestAddDiscardsRedoBranch(t *testing.T) {
	c := &counter{}
	h := New(10)
	h.Add(c.set(1))
	h.Add(c.set(2))
	h.Undo()

	h.Add(c.set(7))

	if h.RedoLength() != 0 {
		t.Errorf("RedoLength = %d, want 0", h.RedoLength())
	}
	if h.UndoLength() != 2 {
		t.Errorf("UndoLength = %d, want 2", h.UndoLength())
	}
	h.Redo()
	if c.value != 7 {
		t.Errorf("value = %d, want 7", c.value)
	}
	h.Undo()
	if c.value != 1 {
		t.Errorf("undo after branch value = %d, want 1", c.value)
	}
}

func TestDepthEvictsOldest(t *testing.T) {
	c := &counter{}
	h := New(2)
	h.Add(c.set(1))
	h.Add(c.set(2))
	h.Add(c.set(3))

	if h.UndoLength() != 2 {
		t.Fatalf("UndoLength = %d, want 2", h.UndoLength())
	}
	h.Undo()
	h.Undo()
	h.Undo()
	if c.value != 1 {
		t.Errorf("value = %d, want 1 (first write is unrecoverable)", c.value)
	}
}

func TestDepthOne(t *testing.T) {
	c := &counter{value: 2}
	h := New(1)

	h.Add(c.set(3))
	if c.value != 3 {
		t.Fatalf("value = %d, want 3", c.value)
	}
	h.Undo()
	if c.value != 2 {
		t.Errorf("value = %d, want 2", c.value)
	}
}

func TestUnbounded(t *testing.T) {
	c := &counter{}
	h := New(0)
	for i := 1; i <= 100; i++ {
		h.Add(c.set(i))
	}
	if h.UndoLength() != 100 || h.Depth() != 0 {
		t.Errorf("UndoLength = %d depth = %d", h.UndoLength(), h.Depth())
	}
}

func TestClean(t *testing.T) {
	c := &counter{}
	h := New(5)
	h.Add(c.set(1))
	h.Add(c.set(2))
	h.Undo()

	h.Clean()

	if h.UndoLength() != 0 || h.RedoLength() != 0 {
		t.Errorf("lengths = %d/%d after Clean", h.UndoLength(), h.RedoLength())
	}
	if c.value != 1 {
		t.Errorf("Clean must not run records, value = %d", c.value)
	}
}

func TestRecordMayAddFromRedo(t *testing.T) {
	h := New(5)
	nested := false
	h.Add(Record{
		Redo: func() {
			if !nested {
				nested = true
				h.Add(Record{})
			}
		},
	})
	if h.UndoLength() != 2 {
		t.Errorf("UndoLength = %d, want 2", h.UndoLength())
	}
}
