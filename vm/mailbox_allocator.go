package vm

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// MailboxAllocator: per-mailbox region and cross-heap object copier
// ---------------------------------------------------------------------------

// MailboxAllocator allocates objects inside a mailbox's private memory
// region, drawing blocks from the shared global allocator as the region
// fills up. Its main job is CopyObject: materializing a private copy of an
// object graph that lives in another process's heap, so the receiving
// process never holds references into memory it does not own.
//
// A mailbox allocator is not safe for concurrent use; the mailbox serializes
// access to it with its write lock.
type MailboxAllocator struct {
	global  *GlobalAllocator
	blocks  []*Block
	current *Block
}

// NewMailboxAllocator creates an allocator drawing from the given pool. No
// block is requested until the first allocation.
func NewMailboxAllocator(global *GlobalAllocator) *MailboxAllocator {
	return &MailboxAllocator{global: global}
}

// Allocate places a new object with the given payload in the mailbox region,
// requesting a fresh block from the global allocator when the current one is
// full. Exhaustion of the global pool is surfaced to the caller.
func (a *MailboxAllocator) Allocate(value ObjectValue) (ObjectPointer, error) {
	if a.current != nil {
		if ptr, ok := a.current.Allocate(); ok {
			ptr.value = value
			return ptr, nil
		}
	}

	block, err := a.global.RequestBlock()
	if err != nil {
		return nil, fmt.Errorf("mailbox allocator: %w", err)
	}
	a.blocks = append(a.blocks, block)
	a.current = block

	ptr, ok := block.Allocate()
	if !ok {
		// A fresh block always has room; a zero-capacity block would
		// mean a broken configuration.
		return nil, fmt.Errorf("mailbox allocator: empty block of capacity %d", block.Capacity())
	}
	ptr.value = value
	return ptr, nil
}

// CopyObject materializes, inside the mailbox region, a copy of the object
// graph rooted at src. The copy is structurally equal to the source at the
// moment of the call and shares no mutable storage with it. Cycles and
// shared substructure are preserved exactly once per source object.
func (a *MailboxAllocator) CopyObject(src ObjectPointer) (ObjectPointer, error) {
	return a.copyObject(src, make(map[ObjectPointer]ObjectPointer))
}

func (a *MailboxAllocator) copyObject(src ObjectPointer, cache map[ObjectPointer]ObjectPointer) (ObjectPointer, error) {
	if src == nil {
		return nil, nil
	}
	if dst, ok := cache[src]; ok {
		return dst, nil
	}

	dst, err := a.Allocate(NoneValue())
	if err != nil {
		return nil, err
	}

	// Register the copy before descending so that cycles through src
	// resolve to dst instead of recursing forever.
	cache[src] = dst

	if dst.proto, err = a.copyObject(src.proto, cache); err != nil {
		return nil, err
	}

	if h := src.header; h != nil {
		dh := dst.ensureHeader()
		dh.name = h.name
		dh.hasName = h.hasName
		dh.pinned = h.pinned
		dh.truthy = h.truthy

		if err := a.copyMap(h.attributes, dh.attributes, cache); err != nil {
			return nil, err
		}
		if err := a.copyMap(h.constants, dh.constants, cache); err != nil {
			return nil, err
		}
		if err := a.copyMap(h.methods, dh.methods, cache); err != nil {
			return nil, err
		}
	}

	if dst.value, err = a.copyValue(src.value, cache); err != nil {
		return nil, err
	}

	return dst, nil
}

func (a *MailboxAllocator) copyMap(src, dst map[string]ObjectPointer, cache map[ObjectPointer]ObjectPointer) error {
	for name, ptr := range src {
		cp, err := a.copyObject(ptr, cache)
		if err != nil {
			return err
		}
		dst[name] = cp
	}
	return nil
}

func (a *MailboxAllocator) copyValue(value ObjectValue, cache map[ObjectPointer]ObjectPointer) (ObjectValue, error) {
	// Integer, float and string payloads are immutable; only array
	// payloads reference other objects.
	if value.kind != KindArray {
		return value, nil
	}

	elements := make([]ObjectPointer, len(value.array))
	for i, ptr := range value.array {
		cp, err := a.copyObject(ptr, cache)
		if err != nil {
			return NoneValue(), err
		}
		elements[i] = cp
	}
	return ArrayValue(elements), nil
}

// BlockCount returns the number of blocks the mailbox region currently owns.
func (a *MailboxAllocator) BlockCount() int {
	return len(a.blocks)
}

// ReturnBlocks hands every owned block back to the global allocator. All
// pointers into the region are invalid afterwards; only process teardown may
// call this.
func (a *MailboxAllocator) ReturnBlocks() {
	a.global.ReturnBlocks(a.blocks)
	a.blocks = nil
	a.current = nil
}
