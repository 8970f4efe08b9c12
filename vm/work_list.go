package vm

// ---------------------------------------------------------------------------
// WorkList: root transport for the collector
// ---------------------------------------------------------------------------

// WorkList is an ordered sequence of object pointers consumed by a tracing
// collector when walking reachable objects. A work list only transports
// references; it owns none of the objects it names.
type WorkList struct {
	pointers []ObjectPointer
}

// NewWorkList returns an empty work list.
func NewWorkList() *WorkList {
	return &WorkList{}
}

// Push appends a pointer to the back of the list.
func (w *WorkList) Push(ptr ObjectPointer) {
	w.pointers = append(w.pointers, ptr)
}

// Pop removes and returns the pointer at the front of the list. The second
// return value is false when the list is empty.
func (w *WorkList) Pop() (ObjectPointer, bool) {
	if len(w.pointers) == 0 {
		return nil, false
	}
	ptr := w.pointers[0]
	w.pointers[0] = nil
	w.pointers = w.pointers[1:]
	return ptr, true
}

// Len returns the number of pointers currently in the list.
func (w *WorkList) Len() int {
	return len(w.pointers)
}

// IsEmpty reports whether the list holds no pointers.
func (w *WorkList) IsEmpty() bool {
	return len(w.pointers) == 0
}
